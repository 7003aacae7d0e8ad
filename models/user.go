package models

import (
	"time"
)

type User struct {
	UserID      int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	FirstName   string     `gorm:"column:first_name" json:"first_name"`
	LastName    string     `gorm:"column:last_name" json:"last_name"`
	Email       string     `gorm:"column:email;unique" json:"email"`
	Password    string     `gorm:"column:password" json:"-"`
	Role        string     `gorm:"column:role" json:"role"`
	Institution string     `gorm:"column:institution" json:"institution"`
	City        string     `gorm:"column:city" json:"city"`
	Country     string     `gorm:"column:country" json:"country"`
	IsActive    bool       `gorm:"column:is_active" json:"is_active"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

// PasswordResetCode is one verification code in the three-step reset flow.
type PasswordResetCode struct {
	CodeID    int       `gorm:"primaryKey;column:code_id" json:"code_id"`
	Email     string    `gorm:"column:email" json:"email"`
	Code      string    `gorm:"column:code" json:"-"`
	Verified  bool      `gorm:"column:verified" json:"verified"`
	Used      bool      `gorm:"column:used" json:"used"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (PasswordResetCode) TableName() string {
	return "password_reset_codes"
}
