package service

import (
	"fmt"
	"log"
	"time"

	"inventory-backend/internal/models"
)

// Coordinator владеет жизненным циклом инвентаризации:
// создание, запуск, проверка позиций, завершение, отмена.
type Coordinator struct {
	equipment   EquipmentStore
	inventories InventoryStore
	recorder    *Recorder
}

func NewCoordinator(equipment EquipmentStore, inventories InventoryStore, recorder *Recorder) *Coordinator {
	return &Coordinator{
		equipment:   equipment,
		inventories: inventories,
		recorder:    recorder,
	}
}

type CreateInventoryInput struct {
	Number        string
	StartDate     time.Time
	EndDate       *time.Time
	ResponsibleID *uint
	Notes         string
}

// Create создаёт инвентаризацию в статусе in_progress и сразу заполняет
// позиции всем активным оборудованием, фиксируя текущее помещение и
// состояние каждой единицы как ожидаемые. Возвращает id и число позиций.
func (c *Coordinator) Create(input CreateInventoryInput) (uint, int, error) {
	if input.Number == "" || input.StartDate.IsZero() {
		return 0, 0, fmt.Errorf("%w: заполните номер и дату начала", ErrValidation)
	}

	exists, err := c.inventories.NumberExists(input.Number)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: проверка номера: %v", ErrPersistence, err)
	}
	if exists {
		return 0, 0, fmt.Errorf("%w: инвентаризация %s уже существует", ErrDuplicateNumber, input.Number)
	}

	active, err := c.equipment.GetActiveEquipment()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: выборка оборудования: %v", ErrPersistence, err)
	}

	inv := models.Inventory{
		InventoryNumber: input.Number,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Status:          models.InventoryInProgress,
		ResponsibleID:   input.ResponsibleID,
		Notes:           input.Notes,
	}

	items := make([]models.InventoryItem, 0, len(active))
	for _, e := range active {
		items = append(items, models.InventoryItem{
			EquipmentID:         e.ID,
			ExpectedLocationID:  e.PremiseID,
			ExpectedConditionID: e.ConditionID,
			Status:              models.ItemNotChecked,
		})
	}

	if err := c.inventories.CreateWithItems(&inv, items); err != nil {
		return 0, 0, fmt.Errorf("%w: создание инвентаризации: %v", ErrPersistence, err)
	}

	return inv.ID, len(items), nil
}

// Start переводит инвентаризацию из planned в in_progress.
// Из любого другого статуса запуск невозможен.
func (c *Coordinator) Start(id uint) error {
	inv, err := c.getInventory(id)
	if err != nil {
		return err
	}
	if !inv.Status.CanTransitionTo(models.InventoryInProgress) {
		return fmt.Errorf("%w: запустить можно только запланированную инвентаризацию", ErrValidation)
	}

	ok, err := c.inventories.UpdateStatus(id, models.InventoryPlanned, models.InventoryInProgress)
	if err != nil {
		return fmt.Errorf("%w: запуск инвентаризации: %v", ErrPersistence, err)
	}
	if !ok {
		return fmt.Errorf("%w: запустить можно только запланированную инвентаризацию", ErrValidation)
	}
	return nil
}

type CheckItemInput struct {
	Status            models.ItemStatus
	ActualLocationID  *uint
	ActualConditionID *uint
	Notes             string
}

// CheckItem фиксирует результат проверки позиции, полностью перезаписывая
// предыдущую проверку. checked_at заполняется только для проверенных
// статусов: у not_checked отметка времени сбрасывается.
func (c *Coordinator) CheckItem(itemID uint, input CheckItemInput) error {
	if !models.ValidItemStatus(input.Status) {
		return fmt.Errorf("%w: недопустимый статус позиции: %s", ErrValidation, input.Status)
	}

	item, err := c.inventories.GetItem(itemID)
	if err != nil {
		return fmt.Errorf("%w: выборка позиции: %v", ErrPersistence, err)
	}
	if item == nil {
		return fmt.Errorf("%w: позиция %d", ErrNotFound, itemID)
	}

	item.Status = input.Status
	item.ActualLocationID = input.ActualLocationID
	item.ActualConditionID = input.ActualConditionID
	item.Notes = input.Notes
	if input.Status == models.ItemNotChecked {
		item.CheckedAt = nil
	} else {
		now := time.Now()
		item.CheckedAt = &now
	}

	if err := c.inventories.SaveItem(item); err != nil {
		return fmt.Errorf("%w: сохранение позиции: %v", ErrPersistence, err)
	}
	return nil
}

// Complete завершает инвентаризацию. Предусловие: все позиции проверены;
// иначе IncompleteAuditError и никаких изменений. После завершения по
// каждой позиции с расхождением или ненайденному оборудованию пишется
// запись истории типа audit_result. Сбой записи истории по одной позиции
// логируется и не прерывает ни завершение, ни запись по остальным.
func (c *Coordinator) Complete(id uint, performedBy *uint) error {
	inv, err := c.getInventory(id)
	if err != nil {
		return err
	}

	unchecked, err := c.inventories.CountUnchecked(id)
	if err != nil {
		return fmt.Errorf("%w: подсчёт непроверенных позиций: %v", ErrPersistence, err)
	}
	if unchecked > 0 {
		return &IncompleteAuditError{Remaining: unchecked}
	}

	ok, err := c.inventories.CompleteInventory(id, time.Now())
	if err != nil {
		return fmt.Errorf("%w: завершение инвентаризации: %v", ErrPersistence, err)
	}
	if !ok {
		return fmt.Errorf("%w: инвентаризация уже завершена", ErrValidation)
	}

	discrepant, err := c.inventories.ListItemsByStatus(id, models.ItemDiscrepancy, models.ItemNotFound)
	if err != nil {
		// инвентаризация уже завершена, откатывать нечего
		log.Printf("inventory %s: failed to list discrepancies for history: %v", inv.InventoryNumber, err)
		return nil
	}

	for _, item := range discrepant {
		snap := c.itemSnapshots(&item)
		reason := fmt.Sprintf("Инвентаризация %s: %s", inv.InventoryNumber, item.Status)
		if err := c.recorder.Record(item.EquipmentID, models.ChangeAuditResult, snap.old, snap.new, reason, item.Notes, performedBy); err != nil {
			log.Printf("inventory %s: history record for equipment %d failed: %v", inv.InventoryNumber, item.EquipmentID, err)
		}
	}

	return nil
}

// Cancel отменяет инвентаризацию из любого статуса, включая терминальные.
// Так ведёт себя исходная система; поведение сохранено сознательно.
func (c *Coordinator) Cancel(id uint) error {
	if _, err := c.getInventory(id); err != nil {
		return err
	}

	if err := c.inventories.CancelInventory(id); err != nil {
		return fmt.Errorf("%w: отмена инвентаризации: %v", ErrPersistence, err)
	}
	return nil
}

func (c *Coordinator) getInventory(id uint) (*models.Inventory, error) {
	inv, err := c.inventories.GetInventory(id)
	if err != nil {
		return nil, fmt.Errorf("%w: выборка инвентаризации: %v", ErrPersistence, err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: инвентаризация %d", ErrNotFound, id)
	}
	return inv, nil
}

type snapshotPair struct {
	old IdentitySnapshot
	new IdentitySnapshot
}

// itemSnapshots строит снимки "ожидалось"/"оказалось" по позиции
// для записи результата инвентаризации в историю.
func (c *Coordinator) itemSnapshots(item *models.InventoryItem) snapshotPair {
	name := ""
	if eq, err := c.equipment.GetEquipment(item.EquipmentID); err == nil && eq != nil {
		name = eq.Name
	}

	return snapshotPair{
		old: IdentitySnapshot{
			Name:        name,
			PremiseID:   item.ExpectedLocationID,
			ConditionID: item.ExpectedConditionID,
		},
		new: IdentitySnapshot{
			Name:        name,
			PremiseID:   item.ActualLocationID,
			ConditionID: item.ActualConditionID,
		},
	}
}
