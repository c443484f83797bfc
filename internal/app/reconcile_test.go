package app_test

import (
	"reflect"
	"testing"

	"homestay_wizard/internal/app"
	"homestay_wizard/internal/domain"
)

func TestReconcileRoomNames_PadsToQuantity(t *testing.T) {
	g := app.ReconcileRoomNames(domain.RoomGroup{
		Type: domain.RoomDeluxe, Quantity: 4, RoomNames: []string{"A", "B"},
	})
	if !reflect.DeepEqual(g.RoomNames, []string{"A", "B", "", ""}) {
		t.Fatalf("pad: %v", g.RoomNames)
	}
}

func TestReconcileRoomNames_TruncatesToQuantity(t *testing.T) {
	g := app.ReconcileRoomNames(domain.RoomGroup{
		Type: domain.RoomDeluxe, Quantity: 1, RoomNames: []string{"A", "B", "C"},
	})
	if !reflect.DeepEqual(g.RoomNames, []string{"A"}) {
		t.Fatalf("truncate: %v", g.RoomNames)
	}
}

func TestReconcileRoomNames_NilNames(t *testing.T) {
	g := app.ReconcileRoomNames(domain.RoomGroup{Type: domain.RoomDorm, Quantity: 2})
	if !reflect.DeepEqual(g.RoomNames, []string{"", ""}) {
		t.Fatalf("nil names: %v", g.RoomNames)
	}
}

func TestReconcileRoomNames_NonPositiveQuantity(t *testing.T) {
	for _, q := range []int{0, -3} {
		g := app.ReconcileRoomNames(domain.RoomGroup{
			Type: domain.RoomDorm, Quantity: q, RoomNames: []string{"X"},
		})
		if len(g.RoomNames) != 0 {
			t.Fatalf("quantity %d: expected empty names, got %v", q, g.RoomNames)
		}
	}
}

func TestReconcileDraft_FixedPoint(t *testing.T) {
	d := domain.HomestayDraft{Rooms: []domain.RoomGroup{
		{Type: domain.RoomDeluxe, Quantity: 3, RoomNames: []string{"A"}},
		{Type: domain.RoomFamily, Quantity: 1, RoomNames: []string{"F1", "F2"}},
		{Type: domain.RoomDorm, Quantity: 2, RoomNames: []string{"D1", "D2"}},
	}}

	if n := app.ReconcileDraft(&d); n != 2 {
		t.Fatalf("expected 2 repairs, got %d", n)
	}
	snapshot := append([]domain.RoomGroup(nil), d.Rooms...)

	// second pass finds nothing to do and changes nothing
	if n := app.ReconcileDraft(&d); n != 0 {
		t.Fatalf("second pass repaired %d groups, want 0", n)
	}
	if !reflect.DeepEqual(d.Rooms, snapshot) {
		t.Fatalf("second pass mutated draft:\n  %+v\nvs %+v", d.Rooms, snapshot)
	}
}

func TestReconcileDraft_LeavesAlignedGroupsUntouched(t *testing.T) {
	names := []string{"D1", "D2"}
	d := domain.HomestayDraft{Rooms: []domain.RoomGroup{
		{Type: domain.RoomDeluxe, Quantity: 2, RoomNames: names},
	}}
	if n := app.ReconcileDraft(&d); n != 0 {
		t.Fatalf("aligned group repaired: %d", n)
	}
	if !reflect.DeepEqual(d.Rooms[0].RoomNames, []string{"D1", "D2"}) {
		t.Fatalf("names changed: %v", d.Rooms[0].RoomNames)
	}
}
