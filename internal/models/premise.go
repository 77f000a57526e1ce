package models

import "gorm.io/gorm"

type Premise struct {
	gorm.Model
	RoomNumber string   `gorm:"size:50;not null" json:"room_number"`
	Building   string   `gorm:"size:255;not null" json:"building"`
	Floor      *int     `json:"floor,omitempty"`
	RoomType   string   `gorm:"size:100" json:"room_type"` // кабинет, склад, серверная и т.п.
	Area       *float64 `json:"area,omitempty"`
	Capacity   *int     `json:"capacity,omitempty"`
	Status     string   `gorm:"size:50" json:"status"`
}

// Location — "корпус, комната" для отчётов и позиций инвентаризации
func (p *Premise) Location() string {
	return p.Building + ", " + p.RoomNumber
}
