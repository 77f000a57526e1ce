package models

import "testing"

func TestInventoryStatusTransitions(t *testing.T) {
	tests := []struct {
		from InventoryStatus
		to   InventoryStatus
		want bool
	}{
		{InventoryPlanned, InventoryInProgress, true},
		{InventoryPlanned, InventoryCancelled, true},
		{InventoryPlanned, InventoryCompleted, false},
		{InventoryInProgress, InventoryCompleted, true},
		{InventoryInProgress, InventoryCancelled, true},
		{InventoryInProgress, InventoryPlanned, false},
		{InventoryCompleted, InventoryInProgress, false},
		{InventoryCompleted, InventoryCancelled, false},
		{InventoryCancelled, InventoryInProgress, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidItemStatus(t *testing.T) {
	for _, s := range []ItemStatus{ItemNotChecked, ItemMatches, ItemDiscrepancy, ItemNotFound} {
		if !ValidItemStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if ValidItemStatus("broken") {
		t.Error("expected unknown status to be invalid")
	}
}
