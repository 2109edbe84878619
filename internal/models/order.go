// internal/models/order.go
package models

// Order keeps a snapshot of the customer instead of a foreign key to users,
// so past orders are unaffected by later account edits.
type Order struct {
	BaseModel
	Status         OrderStatus `json:"status" gorm:"type:varchar(30);not null;default:'created';index"`
	TotalAmount    float64     `json:"total_amount" gorm:"type:decimal(12,2);not null;default:0"`
	CustomerName   string      `json:"customer_name" gorm:"size:120;not null;default:''"`
	CustomerEmail  string      `json:"customer_email" gorm:"size:255;not null;default:'';index"`
	MPPreferenceID string      `json:"mp_preference_id" gorm:"column:mp_preference_id;size:80;not null;default:''"`
	MPPaymentID    string      `json:"mp_payment_id" gorm:"column:mp_payment_id;size:80;not null;default:''"`

	// Relationships
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem copies product data at order time. ProductID is informational
// only and carries no constraint, so products can be deleted freely.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint    `json:"order_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null;index"`
	Name      string  `json:"name" gorm:"size:255;not null"`
	SKU       string  `json:"sku" gorm:"column:sku;size:120;not null"`
	UnitPrice float64 `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
}
