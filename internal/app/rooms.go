package app

import (
	"fmt"

	"homestay_wizard/internal/domain"
)

// Room group editing: translates "select type / set quantity / set price"
// actions into draft mutations. No blocking checks here beyond catalog
// membership; step validation decides what is submittable.

// ToggleRoomType removes the group for t if one exists, otherwise adds a
// fresh group with quantity 1, unset price and one empty room name.
func ToggleRoomType(d *domain.HomestayDraft, t domain.RoomType) error {
	if !t.Valid() {
		return fmt.Errorf("unknown room type %q", t)
	}
	if i := d.RoomGroupIndex(t); i >= 0 {
		return RemoveRoomGroup(d, i)
	}
	return AddRoomGroup(d, domain.RoomGroup{
		Type:          t,
		Quantity:      1,
		PricePerNight: 0,
		RoomNames:     []string{""},
	})
}

// SetRoomQuantity updates quantity for the group of type t and resizes its
// RoomNames in the same patch: existing names keep their position, new slots
// start empty, surplus names are dropped from the end.
func SetRoomQuantity(d *domain.HomestayDraft, t domain.RoomType, qty int) error {
	i := d.RoomGroupIndex(t)
	if i < 0 {
		return fmt.Errorf("no room group for type %q", t)
	}
	names := resizeNames(d.Rooms[i].RoomNames, qty)
	return PatchRoomGroup(d, i, RoomGroupPatch{Quantity: &qty, RoomNames: names})
}

// SetRoomPrice patches the price only; quantity and names ride on the merge
// semantics of PatchRoomGroup.
func SetRoomPrice(d *domain.HomestayDraft, t domain.RoomType, price float64) error {
	i := d.RoomGroupIndex(t)
	if i < 0 {
		return fmt.Errorf("no room group for type %q", t)
	}
	return PatchRoomGroup(d, i, RoomGroupPatch{PricePerNight: &price})
}

// SetRoomNames replaces the names of the group of type t verbatim; length
// drift against quantity is repaired on entry to the naming step.
func SetRoomNames(d *domain.HomestayDraft, t domain.RoomType, names []string) error {
	i := d.RoomGroupIndex(t)
	if i < 0 {
		return fmt.Errorf("no room group for type %q", t)
	}
	return PatchRoomGroup(d, i, RoomGroupPatch{RoomNames: names})
}

// resizeNames returns a names slice of length n, keeping the prefix that
// already existed and padding with "". Non-positive n yields an empty slice
// rather than panicking; the validator rejects such quantities separately.
func resizeNames(names []string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	out := make([]string, n)
	for i := 0; i < n && i < len(names); i++ {
		out[i] = names[i]
	}
	return out
}
