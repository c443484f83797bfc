package app

import "homestay_wizard/internal/domain"

// Room name reconciliation: quantity edits and prefilled edit-mode drafts can
// leave RoomNames out of step with Quantity. This is a silent repair pass,
// not a validator — it pads or truncates and never rejects.

// ReconcileRoomNames returns g with RoomNames resized to exactly Quantity
// entries, keeping existing names by position. A non-positive quantity
// produces an empty name list. Pure; idempotent.
func ReconcileRoomNames(g domain.RoomGroup) domain.RoomGroup {
	if len(g.RoomNames) == g.Quantity && g.Quantity > 0 {
		return g
	}
	g.RoomNames = resizeNames(g.RoomNames, g.Quantity)
	return g
}

// ReconcileDraft repairs every room group in place and reports how many
// actually drifted. Groups already aligned are left untouched.
func ReconcileDraft(d *domain.HomestayDraft) int {
	repaired := 0
	for i := range d.Rooms {
		want := d.Rooms[i].Quantity
		if want < 0 {
			want = 0
		}
		if len(d.Rooms[i].RoomNames) == want {
			continue
		}
		d.Rooms[i] = ReconcileRoomNames(d.Rooms[i])
		repaired++
	}
	return repaired
}
