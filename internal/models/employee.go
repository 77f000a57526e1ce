package models

import "gorm.io/gorm"

// Сотрудник — материально ответственное лицо
type Employee struct {
	gorm.Model
	FullName   string `gorm:"size:255;not null" json:"full_name"`
	Position   string `gorm:"size:255" json:"position"`
	Department string `gorm:"size:255" json:"department"`
	Phone      string `gorm:"size:50" json:"phone"`
	Email      string `gorm:"size:255" json:"email"`
}
