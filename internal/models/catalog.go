package models

import "gorm.io/gorm"

// Справочник категорий оборудования
type Category struct {
	gorm.Model
	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// Справочник состояний оборудования (Новое, Хорошее, ... Списано)
type ConditionStatus struct {
	gorm.Model
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

const (
	// имя состояния, в которое переводится списанное оборудование
	ConditionWrittenOff = "Списано"
	// состояние по умолчанию при восстановлении из списания
	ConditionSatisfactory = "Удовлетворительное"
)
