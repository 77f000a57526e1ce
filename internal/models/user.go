package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type User struct {
	gorm.Model
	Username     string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FullName     string     `gorm:"size:255" json:"full_name"`
	Email        string     `gorm:"size:255" json:"email"`
	Role         UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
