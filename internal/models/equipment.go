package models

import (
	"time"

	"gorm.io/gorm"
)

type Equipment struct {
	gorm.Model
	InventoryNumber string `gorm:"size:100;uniqueIndex;not null" json:"inventory_number"`
	Name            string `gorm:"size:255;not null" json:"name"`

	CategoryID *uint    `json:"category_id,omitempty"`
	Category   Category `json:"-"`

	PremiseID *uint   `json:"premise_id,omitempty"`
	Premise   Premise `json:"-"`

	ResponsibleID *uint    `json:"responsible_id,omitempty"`
	Responsible   Employee `gorm:"foreignKey:ResponsibleID" json:"-"`

	ConditionID *uint           `json:"condition_id,omitempty"`
	Condition   ConditionStatus `gorm:"foreignKey:ConditionID" json:"-"`

	PurchaseDate      *time.Time `json:"purchase_date,omitempty"`
	PurchasePrice     *float64   `json:"purchase_price,omitempty"`
	CurrentValue      *float64   `json:"current_value,omitempty"`
	Manufacturer      string     `gorm:"size:255" json:"manufacturer"`
	EquipmentModel    string     `gorm:"size:255;column:model" json:"model"`
	SerialNumber      string     `gorm:"size:255" json:"serial_number"`
	Description       string     `gorm:"type:text" json:"description"`
	WarrantyUntil     *time.Time `json:"warranty_until,omitempty"`
	CommissioningDate *time.Time `json:"commissioning_date,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	DecommissioningDate   *time.Time `json:"decommissioning_date,omitempty"`
	DecommissioningReason string     `gorm:"type:text" json:"decommissioning_reason,omitempty"`
}
