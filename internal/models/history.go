package models

import "time"

type ChangeType string

const (
	ChangeCreation          ChangeType = "creation"
	ChangeEdit              ChangeType = "edit"
	ChangeRelocation        ChangeType = "relocation"
	ChangeResponsibleChange ChangeType = "responsible_change"
	ChangeConditionChange   ChangeType = "condition_change"
	ChangeAuditResult       ChangeType = "audit_result"
	ChangeWriteOff          ChangeType = "write_off"
	ChangeRestore           ChangeType = "restore"
)

// EquipmentHistory — журнал изменений оборудования.
// Записи только добавляются, никогда не изменяются и не удаляются.
type EquipmentHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ChangeDate time.Time `gorm:"autoCreateTime" json:"change_date"`

	EquipmentID uint      `gorm:"index;not null" json:"equipment_id"`
	Equipment   Equipment `json:"-"`

	ChangeType ChangeType `gorm:"type:varchar(30);not null" json:"change_type"`

	OldValue string `gorm:"size:255" json:"old_value,omitempty"`
	NewValue string `gorm:"size:255" json:"new_value,omitempty"`

	OldPremiseID     *uint `json:"old_premise_id,omitempty"`
	NewPremiseID     *uint `json:"new_premise_id,omitempty"`
	OldResponsibleID *uint `json:"old_responsible_id,omitempty"`
	NewResponsibleID *uint `json:"new_responsible_id,omitempty"`
	OldConditionID   *uint `json:"old_condition_id,omitempty"`
	NewConditionID   *uint `json:"new_condition_id,omitempty"`

	Reason string `gorm:"type:text" json:"reason"`
	Notes  string `gorm:"type:text" json:"notes,omitempty"`

	PerformedBy *uint `json:"performed_by,omitempty"`
}
