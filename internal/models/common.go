// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// JSONB is stored as jsonb on PostgreSQL and as text on SQLite.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}

	return json.Unmarshal(data, j)
}

// Enums
type OrderStatus string

// Provider-specific statuses outside this set are stored verbatim.
const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type DocType string

const (
	DocTypeCPF  DocType = "CPF"
	DocTypeCNPJ DocType = "CNPJ"
)
