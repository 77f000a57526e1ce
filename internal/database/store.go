package database

import (
	"errors"
	"time"

	"inventory-backend/internal/models"

	"gorm.io/gorm"
)

// Store — реализация интерфейсов хранилища из internal/service поверх gorm.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- оборудование ---

func (s *Store) GetActiveEquipment() ([]models.Equipment, error) {
	var equipment []models.Equipment
	if err := s.db.Where("is_active = ?", true).Find(&equipment).Error; err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *Store) GetEquipment(id uint) (*models.Equipment, error) {
	var eq models.Equipment
	if err := s.db.First(&eq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &eq, nil
}

// --- инвентаризации ---

func (s *Store) NumberExists(number string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Inventory{}).
		Where("inventory_number = ?", number).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) CreateWithItems(inv *models.Inventory, items []models.InventoryItem) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InventoryID = inv.ID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (s *Store) GetInventory(id uint) (*models.Inventory, error) {
	var inv models.Inventory
	if err := s.db.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (s *Store) GetItem(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) SaveItem(item *models.InventoryItem) error {
	return s.db.Save(item).Error
}

func (s *Store) CountUnchecked(inventoryID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.InventoryItem{}).
		Where("inventory_id = ? AND checked_at IS NULL", inventoryID).
		Count(&count).Error
	return count, err
}

func (s *Store) CountByStatus(inventoryID uint, status models.ItemStatus) (int64, error) {
	var count int64
	err := s.db.Model(&models.InventoryItem{}).
		Where("inventory_id = ? AND status = ?", inventoryID, status).
		Count(&count).Error
	return count, err
}

func (s *Store) ListItemsByStatus(inventoryID uint, statuses ...models.ItemStatus) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.
		Where("inventory_id = ? AND status IN ?", inventoryID, statuses).
		Find(&items).Error
	return items, err
}

// UpdateStatus — охраняемый переход: строка меняется только если текущий
// статус равен from (аналог WHERE status = ? в исходных запросах).
func (s *Store) UpdateStatus(id uint, from, to models.InventoryStatus) (bool, error) {
	res := s.db.Model(&models.Inventory{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}

// CompleteInventory защищён условием на статус: два конкурентных
// завершения не пройдут оба.
func (s *Store) CompleteInventory(id uint, endDate time.Time) (bool, error) {
	res := s.db.Model(&models.Inventory{}).
		Where("id = ? AND status <> ?", id, models.InventoryCompleted).
		Updates(map[string]interface{}{
			"status":   models.InventoryCompleted,
			"end_date": endDate,
		})
	return res.RowsAffected > 0, res.Error
}

func (s *Store) CancelInventory(id uint) error {
	return s.db.Model(&models.Inventory{}).
		Where("id = ?", id).
		Update("status", models.InventoryCancelled).Error
}

// --- история ---

func (s *Store) Append(rec *models.EquipmentHistory) error {
	return s.db.Create(rec).Error
}

func (s *Store) ListForEquipment(equipmentID uint) ([]models.EquipmentHistory, error) {
	var recs []models.EquipmentHistory
	err := s.db.
		Where("equipment_id = ?", equipmentID).
		Order("change_date desc").
		Find(&recs).Error
	return recs, err
}
