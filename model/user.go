package model

import (
	"time"
)

// User is a back-office account. Users are never physically removed; deactivation clears IsActive.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"type:text;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:text;not null" json:"-"` // Never expose password in JSON
	FullName     string     `gorm:"type:text;not null" json:"full_name"`
	Role         UserRole   `gorm:"type:varchar(24);not null;index" json:"role"`
	IsActive     bool       `gorm:"not null;index" json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
