package service

import (
	"errors"
	"testing"
	"time"

	"inventory-backend/internal/models"
)

// Мок хранилища в памяти

type mockStore struct {
	equipment   map[uint]*models.Equipment
	inventories map[uint]*models.Inventory
	items       map[uint]*models.InventoryItem
	history     []models.EquipmentHistory
	nextID      uint

	appendErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		equipment:   make(map[uint]*models.Equipment),
		inventories: make(map[uint]*models.Inventory),
		items:       make(map[uint]*models.InventoryItem),
	}
}

func (m *mockStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockStore) addEquipment(name string, premiseID, conditionID *uint, active bool) *models.Equipment {
	eq := &models.Equipment{
		Name:        name,
		PremiseID:   premiseID,
		ConditionID: conditionID,
		IsActive:    active,
	}
	eq.ID = m.id()
	m.equipment[eq.ID] = eq
	return eq
}

func (m *mockStore) GetActiveEquipment() ([]models.Equipment, error) {
	var out []models.Equipment
	for _, eq := range m.equipment {
		if eq.IsActive {
			out = append(out, *eq)
		}
	}
	return out, nil
}

func (m *mockStore) GetEquipment(id uint) (*models.Equipment, error) {
	eq, ok := m.equipment[id]
	if !ok {
		return nil, nil
	}
	cp := *eq
	return &cp, nil
}

func (m *mockStore) NumberExists(number string) (bool, error) {
	for _, inv := range m.inventories {
		if inv.InventoryNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) CreateWithItems(inv *models.Inventory, items []models.InventoryItem) error {
	inv.ID = m.id()
	cp := *inv
	m.inventories[inv.ID] = &cp
	for i := range items {
		items[i].InventoryID = inv.ID
		items[i].ID = m.id()
		itemCp := items[i]
		m.items[itemCp.ID] = &itemCp
	}
	return nil
}

func (m *mockStore) GetInventory(id uint) (*models.Inventory, error) {
	inv, ok := m.inventories[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (m *mockStore) GetItem(id uint) (*models.InventoryItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (m *mockStore) SaveItem(item *models.InventoryItem) error {
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *mockStore) CountUnchecked(inventoryID uint) (int64, error) {
	var count int64
	for _, item := range m.items {
		if item.InventoryID == inventoryID && item.CheckedAt == nil {
			count++
		}
	}
	return count, nil
}

func (m *mockStore) CountByStatus(inventoryID uint, status models.ItemStatus) (int64, error) {
	var count int64
	for _, item := range m.items {
		if item.InventoryID == inventoryID && item.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockStore) ListItemsByStatus(inventoryID uint, statuses ...models.ItemStatus) ([]models.InventoryItem, error) {
	var out []models.InventoryItem
	for _, item := range m.items {
		if item.InventoryID != inventoryID {
			continue
		}
		for _, s := range statuses {
			if item.Status == s {
				out = append(out, *item)
				break
			}
		}
	}
	return out, nil
}

func (m *mockStore) UpdateStatus(id uint, from, to models.InventoryStatus) (bool, error) {
	inv, ok := m.inventories[id]
	if !ok || inv.Status != from {
		return false, nil
	}
	inv.Status = to
	return true, nil
}

func (m *mockStore) CompleteInventory(id uint, endDate time.Time) (bool, error) {
	inv, ok := m.inventories[id]
	if !ok || inv.Status == models.InventoryCompleted {
		return false, nil
	}
	inv.Status = models.InventoryCompleted
	inv.EndDate = &endDate
	return true, nil
}

func (m *mockStore) CancelInventory(id uint) error {
	inv, ok := m.inventories[id]
	if !ok {
		return errors.New("no such inventory")
	}
	inv.Status = models.InventoryCancelled
	return nil
}

func (m *mockStore) Append(rec *models.EquipmentHistory) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	rec.ID = m.id()
	m.history = append(m.history, *rec)
	return nil
}

func (m *mockStore) ListForEquipment(equipmentID uint) ([]models.EquipmentHistory, error) {
	var out []models.EquipmentHistory
	for _, rec := range m.history {
		if rec.EquipmentID == equipmentID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func uintPtr(v uint) *uint { return &v }

func newCoordinator(store *mockStore) *Coordinator {
	return NewCoordinator(store, store, NewRecorder(store))
}

func mustCreate(t *testing.T, c *Coordinator, number string) uint {
	t.Helper()
	id, _, err := c.Create(CreateInventoryInput{
		Number:    number,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create inventory: %v", err)
	}
	return id
}

// --- создание ---

func TestCreatePopulatesActiveEquipment(t *testing.T) {
	store := newMockStore()
	store.addEquipment("ПК", uintPtr(1), uintPtr(2), true)
	store.addEquipment("Принтер", uintPtr(3), uintPtr(1), true)
	store.addEquipment("Старый сервер", uintPtr(1), uintPtr(5), false)

	c := newCoordinator(store)
	id, count, err := c.Create(CreateInventoryInput{
		Number:    "INV-1",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 items, got %d", count)
	}

	unchecked, _ := store.CountUnchecked(id)
	if unchecked != 2 {
		t.Errorf("expected 2 unchecked items, got %d", unchecked)
	}

	inv, _ := store.GetInventory(id)
	if inv.Status != models.InventoryInProgress {
		t.Errorf("expected status in_progress, got %s", inv.Status)
	}

	for _, item := range store.items {
		eq := store.equipment[item.EquipmentID]
		if item.Status != models.ItemNotChecked {
			t.Errorf("expected not_checked item, got %s", item.Status)
		}
		if !ptrEqual(item.ExpectedLocationID, eq.PremiseID) {
			t.Errorf("expected location snapshot from equipment")
		}
		if !ptrEqual(item.ExpectedConditionID, eq.ConditionID) {
			t.Errorf("expected condition snapshot from equipment")
		}
	}
}

func TestCreateDuplicateNumber(t *testing.T) {
	store := newMockStore()
	store.addEquipment("ПК", nil, nil, true)

	c := newCoordinator(store)
	mustCreate(t, c, "INV-1")

	itemsBefore := len(store.items)
	_, _, err := c.Create(CreateInventoryInput{
		Number:    "INV-1",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrDuplicateNumber) {
		t.Fatalf("expected ErrDuplicateNumber, got %v", err)
	}
	if len(store.inventories) != 1 {
		t.Errorf("expected no second inventory, got %d", len(store.inventories))
	}
	if len(store.items) != itemsBefore {
		t.Errorf("expected no items added on duplicate")
	}
}

func TestCreateRequiresNumberAndDate(t *testing.T) {
	c := newCoordinator(newMockStore())

	if _, _, err := c.Create(CreateInventoryInput{StartDate: time.Now()}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for empty number, got %v", err)
	}
	if _, _, err := c.Create(CreateInventoryInput{Number: "INV-1"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for zero date, got %v", err)
	}
}

// --- запуск ---

func TestStartOnlyFromPlanned(t *testing.T) {
	store := newMockStore()
	c := newCoordinator(store)
	id := mustCreate(t, c, "INV-1")

	// создана сразу in_progress — запуск должен отказать
	if err := c.Start(id); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation starting in_progress inventory, got %v", err)
	}

	store.inventories[id].Status = models.InventoryPlanned
	if err := c.Start(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.inventories[id].Status != models.InventoryInProgress {
		t.Errorf("expected in_progress after start, got %s", store.inventories[id].Status)
	}
}

func TestStartUnknownInventory(t *testing.T) {
	c := newCoordinator(newMockStore())
	if err := c.Start(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// --- проверка позиций ---

func firstItemID(store *mockStore) uint {
	for id := range store.items {
		return id
	}
	return 0
}

func TestCheckItemOverwritesPreviousCheck(t *testing.T) {
	store := newMockStore()
	store.addEquipment("ПК", uintPtr(1), uintPtr(1), true)
	c := newCoordinator(store)
	mustCreate(t, c, "INV-1")

	itemID := firstItemID(store)

	err := c.CheckItem(itemID, CheckItemInput{
		Status:           models.ItemMatches,
		ActualLocationID: uintPtr(1),
		Notes:            "на месте",
	})
	if err != nil {
		t.Fatalf("first check: %v", err)
	}
	firstChecked := store.items[itemID].CheckedAt
	if firstChecked == nil {
		t.Fatal("expected checked_at set after check")
	}

	err = c.CheckItem(itemID, CheckItemInput{
		Status:            models.ItemDiscrepancy,
		ActualLocationID:  uintPtr(9),
		ActualConditionID: uintPtr(4),
		Notes:             "перенесён",
	})
	if err != nil {
		t.Fatalf("second check: %v", err)
	}

	item := store.items[itemID]
	if item.Status != models.ItemDiscrepancy {
		t.Errorf("expected second status to win, got %s", item.Status)
	}
	if item.ActualLocationID == nil || *item.ActualLocationID != 9 {
		t.Errorf("expected actual location 9, got %v", item.ActualLocationID)
	}
	if item.Notes != "перенесён" {
		t.Errorf("expected second notes to win, got %q", item.Notes)
	}
	if item.CheckedAt == nil {
		t.Error("expected checked_at still set")
	}
}

func TestCheckItemResetsCheckedAtForNotChecked(t *testing.T) {
	store := newMockStore()
	store.addEquipment("ПК", nil, nil, true)
	c := newCoordinator(store)
	mustCreate(t, c, "INV-1")

	itemID := firstItemID(store)
	if err := c.CheckItem(itemID, CheckItemInput{Status: models.ItemMatches}); err != nil {
		t.Fatalf("check: %v", err)
	}
	if err := c.CheckItem(itemID, CheckItemInput{Status: models.ItemNotChecked}); err != nil {
		t.Fatalf("uncheck: %v", err)
	}
	if store.items[itemID].CheckedAt != nil {
		t.Error("expected checked_at cleared for not_checked status")
	}
}

func TestCheckItemValidation(t *testing.T) {
	store := newMockStore()
	store.addEquipment("ПК", nil, nil, true)
	c := newCoordinator(store)
	mustCreate(t, c, "INV-1")

	if err := c.CheckItem(firstItemID(store), CheckItemInput{Status: "сломано"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown status, got %v", err)
	}
	if err := c.CheckItem(9999, CheckItemInput{Status: models.ItemMatches}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// --- завершение ---

func checkAll(t *testing.T, c *Coordinator, store *mockStore, invID uint, status models.ItemStatus) {
	t.Helper()
	for id, item := range store.items {
		if item.InventoryID != invID {
			continue
		}
		if err := c.CheckItem(id, CheckItemInput{Status: status}); err != nil {
			t.Fatalf("check item %d: %v", id, err)
		}
	}
}

func TestCompleteFailsWhileItemsUnchecked(t *testing.T) {
	store := newMockStore()
	store.addEquipment("ПК", nil, nil, true)
	store.addEquipment("Принтер", nil, nil, true)
	c := newCoordinator(store)
	id := mustCreate(t, c, "INV-1")

	err := c.Complete(id, nil)
	var incomplete *IncompleteAuditError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteAuditError, got %v", err)
	}
	if incomplete.Remaining != 2 {
		t.Errorf("expected 2 remaining, got %d", incomplete.Remaining)
	}

	// никаких частичных изменений
	inv, _ := store.GetInventory(id)
	if inv.Status != models.InventoryInProgress {
		t.Errorf("expected status unchanged, got %s", inv.Status)
	}
	if inv.EndDate != nil {
		t.Error("expected end_date unchanged")
	}
	if len(store.history) != 0 {
		t.Error("expected no history written")
	}
}

func TestCompleteWritesAuditResultHistory(t *testing.T) {
	store := newMockStore()
	okEq := store.addEquipment("ПК", uintPtr(1), uintPtr(1), true)
	movedEq := store.addEquipment("Принтер", uintPtr(1), uintPtr(1), true)
	lostEq := store.addEquipment("Проектор", uintPtr(2), uintPtr(1), true)
	c := newCoordinator(store)
	id := mustCreate(t, c, "INV-7")

	for itemID, item := range store.items {
		var input CheckItemInput
		switch item.EquipmentID {
		case okEq.ID:
			input = CheckItemInput{Status: models.ItemMatches}
		case movedEq.ID:
			input = CheckItemInput{Status: models.ItemDiscrepancy, ActualLocationID: uintPtr(5), Notes: "найден в другом кабинете"}
		case lostEq.ID:
			input = CheckItemInput{Status: models.ItemNotFound}
		}
		if err := c.CheckItem(itemID, input); err != nil {
			t.Fatalf("check: %v", err)
		}
	}

	if err := c.Complete(id, uintPtr(77)); err != nil {
		t.Fatalf("complete: %v", err)
	}

	inv, _ := store.GetInventory(id)
	if inv.Status != models.InventoryCompleted {
		t.Errorf("expected completed, got %s", inv.Status)
	}
	if inv.EndDate == nil {
		t.Error("expected end_date set")
	}

	if len(store.history) != 2 {
		t.Fatalf("expected 2 history records, got %d", len(store.history))
	}
	seen := map[uint]bool{}
	for _, rec := range store.history {
		seen[rec.EquipmentID] = true
		if rec.ChangeType != models.ChangeAuditResult {
			t.Errorf("expected audit_result, got %s", rec.ChangeType)
		}
		if rec.PerformedBy == nil || *rec.PerformedBy != 77 {
			t.Errorf("expected performed_by 77, got %v", rec.PerformedBy)
		}
	}
	if !seen[movedEq.ID] || !seen[lostEq.ID] {
		t.Error("expected history for discrepancy and not_found equipment")
	}
	if seen[okEq.ID] {
		t.Error("matched item must not produce history")
	}
}

func TestCompleteSurvivesHistoryFailure(t *testing.T) {
	store := newMockStore()
	store.addEquipment("ПК", uintPtr(1), uintPtr(1), true)
	c := newCoordinator(store)
	id := mustCreate(t, c, "INV-1")
	checkAll(t, c, store, id, models.ItemNotFound)

	store.appendErr = errors.New("disk full")

	if err := c.Complete(id, nil); err != nil {
		t.Fatalf("expected completion despite history failure, got %v", err)
	}
	inv, _ := store.GetInventory(id)
	if inv.Status != models.InventoryCompleted {
		t.Errorf("expected completed, got %s", inv.Status)
	}
}

func TestCompleteTwice(t *testing.T) {
	store := newMockStore()
	store.addEquipment("ПК", nil, nil, true)
	c := newCoordinator(store)
	id := mustCreate(t, c, "INV-1")
	checkAll(t, c, store, id, models.ItemMatches)

	if err := c.Complete(id, nil); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if err := c.Complete(id, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation on second complete, got %v", err)
	}
}

// --- отмена ---

func TestCancelIgnoresStatus(t *testing.T) {
	store := newMockStore()
	store.addEquipment("ПК", nil, nil, true)
	c := newCoordinator(store)
	id := mustCreate(t, c, "INV-1")
	checkAll(t, c, store, id, models.ItemMatches)

	if err := c.Complete(id, nil); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// отмена проходит даже для завершённой инвентаризации —
	// поведение исходной системы
	if err := c.Cancel(id); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	inv, _ := store.GetInventory(id)
	if inv.Status != models.InventoryCancelled {
		t.Errorf("expected cancelled, got %s", inv.Status)
	}
}

func TestCancelUnknownInventory(t *testing.T) {
	c := newCoordinator(newMockStore())
	if err := c.Cancel(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
