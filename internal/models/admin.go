// internal/models/admin.go
package models

// AuditLog records mutating admin requests.
type AuditLog struct {
	BaseModel
	UserID       *uint  `json:"user_id" gorm:"index"`
	Action       string `json:"action" gorm:"size:100;not null;index"`
	ResourceType string `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   *uint  `json:"resource_id" gorm:"index"`
	NewValues    JSONB  `json:"new_values" gorm:"type:jsonb"`
	StatusCode   int    `json:"status_code"`
	IPAddress    string `json:"ip_address" gorm:"size:45"`
	UserAgent    string `json:"user_agent" gorm:"type:text"`
	RequestID    string `json:"request_id" gorm:"size:64"`
}
