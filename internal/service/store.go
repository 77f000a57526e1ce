package service

import (
	"time"

	"inventory-backend/internal/models"
)

// Узкие интерфейсы хранилища, через которые работает ядро.
// Реализация на gorm живёт в internal/database.

type EquipmentStore interface {
	GetActiveEquipment() ([]models.Equipment, error)
	GetEquipment(id uint) (*models.Equipment, error)
}

type InventoryStore interface {
	NumberExists(number string) (bool, error)

	// CreateWithItems сохраняет инвентаризацию вместе с позициями
	// в одной транзакции.
	CreateWithItems(inv *models.Inventory, items []models.InventoryItem) error

	GetInventory(id uint) (*models.Inventory, error)
	GetItem(id uint) (*models.InventoryItem, error)
	SaveItem(item *models.InventoryItem) error

	CountUnchecked(inventoryID uint) (int64, error)
	CountByStatus(inventoryID uint, status models.ItemStatus) (int64, error)
	ListItemsByStatus(inventoryID uint, statuses ...models.ItemStatus) ([]models.InventoryItem, error)

	// UpdateStatus переводит статус только из from в to и сообщает,
	// была ли изменена строка.
	UpdateStatus(id uint, from, to models.InventoryStatus) (bool, error)

	// CompleteInventory выставляет completed и дату окончания, если
	// инвентаризация ещё не завершена (защита от гонки двух завершений).
	CompleteInventory(id uint, endDate time.Time) (bool, error)

	// CancelInventory выставляет cancelled без проверки текущего статуса.
	CancelInventory(id uint) error
}

type HistoryStore interface {
	Append(rec *models.EquipmentHistory) error
	ListForEquipment(equipmentID uint) ([]models.EquipmentHistory, error)
}
