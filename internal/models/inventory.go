package models

import (
	"time"

	"gorm.io/gorm"
)

type InventoryStatus string
type ItemStatus string

const (
	InventoryPlanned    InventoryStatus = "planned"
	InventoryInProgress InventoryStatus = "in_progress"
	InventoryCompleted  InventoryStatus = "completed"
	InventoryCancelled  InventoryStatus = "cancelled"

	ItemNotChecked  ItemStatus = "not_checked"
	ItemMatches     ItemStatus = "matches"
	ItemDiscrepancy ItemStatus = "discrepancy"
	ItemNotFound    ItemStatus = "not_found"
)

// CanTransitionTo проверяет допустимость перехода статуса инвентаризации.
// Отмена сюда намеренно не входит: Cancel работает без проверки статуса
// (поведение исходной системы сохранено).
func (s InventoryStatus) CanTransitionTo(next InventoryStatus) bool {
	switch s {
	case InventoryPlanned:
		return next == InventoryInProgress || next == InventoryCancelled
	case InventoryInProgress:
		return next == InventoryCompleted || next == InventoryCancelled
	default:
		// completed и cancelled — терминальные
		return false
	}
}

func ValidItemStatus(s ItemStatus) bool {
	switch s {
	case ItemNotChecked, ItemMatches, ItemDiscrepancy, ItemNotFound:
		return true
	}
	return false
}

// Инвентаризация (цикл проверки наличия оборудования)
type Inventory struct {
	gorm.Model
	InventoryNumber string          `gorm:"size:100;uniqueIndex;not null" json:"inventory_number"`
	StartDate       time.Time       `gorm:"not null" json:"start_date"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	Status          InventoryStatus `gorm:"type:varchar(20);not null" json:"status"`

	ResponsibleID *uint    `json:"responsible_id,omitempty"`
	Responsible   Employee `gorm:"foreignKey:ResponsibleID" json:"-"`

	Notes string `gorm:"type:text" json:"notes"`

	Items []InventoryItem `json:"-"`
}

// Позиция инвентаризации: ожидаемое и фактическое состояние одной единицы
type InventoryItem struct {
	gorm.Model
	InventoryID uint `gorm:"index;not null" json:"inventory_id"`

	EquipmentID uint      `gorm:"index;not null" json:"equipment_id"`
	Equipment   Equipment `json:"-"`

	ExpectedLocationID  *uint           `json:"expected_location_id,omitempty"`
	ExpectedLocation    Premise         `gorm:"foreignKey:ExpectedLocationID" json:"-"`
	ExpectedConditionID *uint           `json:"expected_condition_id,omitempty"`
	ExpectedCondition   ConditionStatus `gorm:"foreignKey:ExpectedConditionID" json:"-"`
	ActualLocationID    *uint           `json:"actual_location_id,omitempty"`
	ActualLocation      Premise         `gorm:"foreignKey:ActualLocationID" json:"-"`
	ActualConditionID   *uint           `json:"actual_condition_id,omitempty"`
	ActualCondition     ConditionStatus `gorm:"foreignKey:ActualConditionID" json:"-"`

	Status    ItemStatus `gorm:"type:varchar(20);not null" json:"status"`
	Notes     string     `gorm:"type:text" json:"notes"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
}
