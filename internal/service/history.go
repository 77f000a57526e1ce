package service

import (
	"fmt"
	"strings"

	"inventory-backend/internal/models"
)

// IdentitySnapshot — значимые поля оборудования на момент изменения:
// название и три ссылки (помещение, ответственный, состояние).
type IdentitySnapshot struct {
	Name          string
	PremiseID     *uint
	ResponsibleID *uint
	ConditionID   *uint
}

// SnapshotOf снимает IdentitySnapshot с текущего состояния оборудования.
func SnapshotOf(e *models.Equipment) IdentitySnapshot {
	return IdentitySnapshot{
		Name:          e.Name,
		PremiseID:     e.PremiseID,
		ResponsibleID: e.ResponsibleID,
		ConditionID:   e.ConditionID,
	}
}

var fieldLabels = map[string]string{
	"premise":     "помещение",
	"responsible": "ответственный",
	"condition":   "состояние",
}

// ChangedFieldsLabel — человекочитаемый список изменённых полей
// для поля reason в истории ("Изменено: помещение, ответственный").
func ChangedFieldsLabel(fields []string) string {
	labels := make([]string, 0, len(fields))
	for _, f := range fields {
		if l, ok := fieldLabels[f]; ok {
			labels = append(labels, l)
		} else {
			labels = append(labels, f)
		}
	}
	return "Изменено: " + strings.Join(labels, ", ")
}

func ptrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Classify сравнивает старый и новый снимки и возвращает тип изменения
// и все отличающиеся поля. Тип определяется первым сработавшим правилом:
// помещение > ответственный > состояние; если ничего из тройки не
// поменялось — это обычное редактирование. Порядок фиксирован: от него
// зависит совместимость отчётов по истории.
func Classify(old, new IdentitySnapshot) (models.ChangeType, []string) {
	changeType := models.ChangeEdit
	var changed []string

	if !ptrEqual(old.PremiseID, new.PremiseID) {
		changeType = models.ChangeRelocation
		changed = append(changed, "premise")
	}

	if !ptrEqual(old.ResponsibleID, new.ResponsibleID) {
		if changeType == models.ChangeEdit {
			changeType = models.ChangeResponsibleChange
		}
		changed = append(changed, "responsible")
	}

	if !ptrEqual(old.ConditionID, new.ConditionID) {
		if changeType == models.ChangeEdit {
			changeType = models.ChangeConditionChange
		}
		changed = append(changed, "condition")
	}

	return changeType, changed
}

// Recorder ведёт журнал изменений оборудования.
type Recorder struct {
	history HistoryStore
}

func NewRecorder(history HistoryStore) *Recorder {
	return &Recorder{history: history}
}

// Record добавляет одну запись в журнал. Записи никогда не изменяются
// и не удаляются. Единственная возможная ошибка — ErrPersistence;
// вызывающий сам решает, критична ли она (при завершении инвентаризации
// она только логируется).
func (r *Recorder) Record(equipmentID uint, changeType models.ChangeType, old, new IdentitySnapshot, reason, notes string, performedBy *uint) error {
	rec := models.EquipmentHistory{
		EquipmentID:      equipmentID,
		ChangeType:       changeType,
		OldValue:         old.Name,
		NewValue:         new.Name,
		OldPremiseID:     old.PremiseID,
		NewPremiseID:     new.PremiseID,
		OldResponsibleID: old.ResponsibleID,
		NewResponsibleID: new.ResponsibleID,
		OldConditionID:   old.ConditionID,
		NewConditionID:   new.ConditionID,
		Reason:           reason,
		Notes:            notes,
		PerformedBy:      performedBy,
	}

	if err := r.history.Append(&rec); err != nil {
		return fmt.Errorf("%w: запись истории: %v", ErrPersistence, err)
	}
	return nil
}

// History возвращает журнал по конкретному оборудованию.
func (r *Recorder) History(equipmentID uint) ([]models.EquipmentHistory, error) {
	recs, err := r.history.ListForEquipment(equipmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: чтение истории: %v", ErrPersistence, err)
	}
	return recs, nil
}
