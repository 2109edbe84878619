// internal/models/user.go
package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name         string `json:"name" gorm:"size:120;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	IsAdmin      bool   `json:"is_admin" gorm:"default:false"`

	// Customer profile
	DocType    *string `json:"doc_type" gorm:"size:10"`
	DocNumber  *string `json:"doc_number" gorm:"size:20;index:idx_users_doc_number"`
	Phone      *string `json:"phone" gorm:"size:20"`
	CEP        *string `json:"cep" gorm:"column:cep;size:9"`
	Address    *string `json:"address" gorm:"size:255"`
	Number     *string `json:"number" gorm:"size:30"`
	Complement *string `json:"complement" gorm:"size:120"`
	District   *string `json:"district" gorm:"size:120"`
	City       *string `json:"city" gorm:"size:120"`
	State      *string `json:"state" gorm:"size:2"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// OptionalString returns nil for blank input so empty profile fields stay NULL.
func OptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NormalizeState keeps the two-letter UF code, uppercased.
func NormalizeState(s *string) *string {
	v := OptionalString(s)
	if v == nil {
		return nil
	}
	state := strings.ToUpper(*v)
	if len(state) > 2 {
		state = state[:2]
	}
	return &state
}
