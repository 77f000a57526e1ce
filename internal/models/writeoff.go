package models

import (
	"time"

	"gorm.io/gorm"
)

// Акт списания оборудования
type WriteOff struct {
	gorm.Model
	EquipmentID uint      `gorm:"index;not null" json:"equipment_id"`
	Equipment   Equipment `json:"-"`

	WriteOffDate   time.Time  `gorm:"not null" json:"write_off_date"`
	Reason         string     `gorm:"type:text;not null" json:"reason"`
	DocumentNumber string     `gorm:"size:100" json:"document_number,omitempty"`
	DocumentDate   *time.Time `json:"document_date,omitempty"`
	ResidualValue  *float64   `json:"residual_value,omitempty"`

	ApprovedBy *uint    `json:"approved_by,omitempty"`
	Approver   Employee `gorm:"foreignKey:ApprovedBy" json:"-"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`
}
