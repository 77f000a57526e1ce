package service

import (
	"errors"
	"reflect"
	"testing"

	"inventory-backend/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		old        IdentitySnapshot
		new        IdentitySnapshot
		wantType   models.ChangeType
		wantFields []string
	}{
		{
			name:     "nothing changed",
			old:      IdentitySnapshot{PremiseID: uintPtr(1), ResponsibleID: uintPtr(5), ConditionID: uintPtr(2)},
			new:      IdentitySnapshot{PremiseID: uintPtr(1), ResponsibleID: uintPtr(5), ConditionID: uintPtr(2)},
			wantType: models.ChangeEdit,
		},
		{
			name:       "premise changed",
			old:        IdentitySnapshot{PremiseID: uintPtr(1), ResponsibleID: uintPtr(5), ConditionID: uintPtr(2)},
			new:        IdentitySnapshot{PremiseID: uintPtr(9), ResponsibleID: uintPtr(5), ConditionID: uintPtr(2)},
			wantType:   models.ChangeRelocation,
			wantFields: []string{"premise"},
		},
		{
			name:       "responsible and condition changed",
			old:        IdentitySnapshot{PremiseID: uintPtr(1), ResponsibleID: uintPtr(5), ConditionID: uintPtr(2)},
			new:        IdentitySnapshot{PremiseID: uintPtr(1), ResponsibleID: uintPtr(8), ConditionID: uintPtr(4)},
			wantType:   models.ChangeResponsibleChange,
			wantFields: []string{"responsible", "condition"},
		},
		{
			name:       "all three changed, premise wins",
			old:        IdentitySnapshot{PremiseID: uintPtr(1), ResponsibleID: uintPtr(5), ConditionID: uintPtr(2)},
			new:        IdentitySnapshot{PremiseID: uintPtr(2), ResponsibleID: uintPtr(6), ConditionID: uintPtr(3)},
			wantType:   models.ChangeRelocation,
			wantFields: []string{"premise", "responsible", "condition"},
		},
		{
			name:       "condition only",
			old:        IdentitySnapshot{PremiseID: uintPtr(1), ResponsibleID: uintPtr(5), ConditionID: uintPtr(2)},
			new:        IdentitySnapshot{PremiseID: uintPtr(1), ResponsibleID: uintPtr(5), ConditionID: uintPtr(3)},
			wantType:   models.ChangeConditionChange,
			wantFields: []string{"condition"},
		},
		{
			name:       "nil to value is a change",
			old:        IdentitySnapshot{},
			new:        IdentitySnapshot{PremiseID: uintPtr(1)},
			wantType:   models.ChangeRelocation,
			wantFields: []string{"premise"},
		},
		{
			name:       "value to nil is a change",
			old:        IdentitySnapshot{ResponsibleID: uintPtr(5)},
			new:        IdentitySnapshot{},
			wantType:   models.ChangeResponsibleChange,
			wantFields: []string{"responsible"},
		},
		{
			name:     "distinct pointers to equal ids are no change",
			old:      IdentitySnapshot{PremiseID: uintPtr(7)},
			new:      IdentitySnapshot{PremiseID: uintPtr(7)},
			wantType: models.ChangeEdit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotFields := Classify(tt.old, tt.new)
			if gotType != tt.wantType {
				t.Errorf("type: got %s, want %s", gotType, tt.wantType)
			}
			if !reflect.DeepEqual(gotFields, tt.wantFields) {
				t.Errorf("fields: got %v, want %v", gotFields, tt.wantFields)
			}
		})
	}
}

func TestChangedFieldsLabel(t *testing.T) {
	got := ChangedFieldsLabel([]string{"premise", "responsible"})
	want := "Изменено: помещение, ответственный"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRecordAppends(t *testing.T) {
	store := newMockStore()
	r := NewRecorder(store)

	old := IdentitySnapshot{Name: "ПК", PremiseID: uintPtr(1)}
	new := IdentitySnapshot{Name: "ПК", PremiseID: uintPtr(2)}

	if err := r.Record(10, models.ChangeRelocation, old, new, "Изменено: помещение", "", uintPtr(3)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := r.Record(10, models.ChangeConditionChange, new, new, "Изменено: состояние", "", nil); err != nil {
		t.Fatalf("record: %v", err)
	}

	recs, err := r.History(10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	first := recs[0]
	if first.ChangeType != models.ChangeRelocation {
		t.Errorf("expected relocation, got %s", first.ChangeType)
	}
	if first.OldPremiseID == nil || *first.OldPremiseID != 1 ||
		first.NewPremiseID == nil || *first.NewPremiseID != 2 {
		t.Errorf("expected premise snapshot 1 -> 2")
	}
	if first.PerformedBy == nil || *first.PerformedBy != 3 {
		t.Errorf("expected performed_by 3, got %v", first.PerformedBy)
	}
}

func TestRecordPersistenceError(t *testing.T) {
	store := newMockStore()
	store.appendErr = errors.New("connection reset")
	r := NewRecorder(store)

	err := r.Record(1, models.ChangeEdit, IdentitySnapshot{}, IdentitySnapshot{}, "", "", nil)
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
}
