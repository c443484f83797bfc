package app

import (
	"fmt"

	"homestay_wizard/internal/domain"
)

// Draft mutators. Every change to a draft goes through one of these; none of
// them validate (validation is the step validator's job) and none of them do
// I/O.

// DraftPatch is a partial update of the draft's scalar fields. Nil pointers
// leave the field untouched; set pointers overwrite it wholesale.
type DraftPatch struct {
	Name            *string
	Description     *string
	GoogleMapsEmbed *string
	PricePerNight   *string
	Featured        *bool
	RequireDeposit  *bool
}

func ApplyDraftPatch(d *domain.HomestayDraft, p DraftPatch) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.GoogleMapsEmbed != nil {
		d.GoogleMapsEmbed = *p.GoogleMapsEmbed
	}
	if p.PricePerNight != nil {
		d.PricePerNight = *p.PricePerNight
	}
	if p.Featured != nil {
		d.Featured = *p.Featured
	}
	if p.RequireDeposit != nil {
		d.RequireDeposit = *p.RequireDeposit
	}
}

// SetAddress replaces the address sub-object wholesale.
func SetAddress(d *domain.HomestayDraft, a domain.Address) {
	d.Address = a
}

// SetImages replaces both image arrays at once. They are parallel by
// position, so a length mismatch is rejected before it can corrupt the draft.
func SetImages(d *domain.HomestayDraft, images, uris []string) error {
	if len(images) != len(uris) {
		return fmt.Errorf("images and imageUris must align: %d vs %d", len(images), len(uris))
	}
	d.Images = append([]string(nil), images...)
	d.ImageURIs = append([]string(nil), uris...)
	return nil
}

// RemoveImage drops index i from both parallel arrays atomically.
func RemoveImage(d *domain.HomestayDraft, i int) error {
	if i < 0 || i >= len(d.Images) {
		return fmt.Errorf("image index %d out of range [0,%d)", i, len(d.Images))
	}
	d.Images = append(d.Images[:i], d.Images[i+1:]...)
	d.ImageURIs = append(d.ImageURIs[:i], d.ImageURIs[i+1:]...)
	return nil
}

// AddRoomGroup appends a group. Type uniqueness is the room editor's
// responsibility (it toggles instead of double-adding); this guard is the
// last line against a corrupted draft.
func AddRoomGroup(d *domain.HomestayDraft, g domain.RoomGroup) error {
	if d.RoomGroupIndex(g.Type) >= 0 {
		return fmt.Errorf("room group %q already present", g.Type)
	}
	d.Rooms = append(d.Rooms, g)
	return nil
}

func RemoveRoomGroup(d *domain.HomestayDraft, i int) error {
	if i < 0 || i >= len(d.Rooms) {
		return fmt.Errorf("room group index %d out of range [0,%d)", i, len(d.Rooms))
	}
	d.Rooms = append(d.Rooms[:i], d.Rooms[i+1:]...)
	return nil
}

// RoomGroupPatch is a partial update of one room group: shallow overwrite of
// the named fields only, everything else preserved.
type RoomGroupPatch struct {
	Quantity      *int
	PricePerNight *float64
	RoomNames     []string // nil = keep
}

func PatchRoomGroup(d *domain.HomestayDraft, i int, p RoomGroupPatch) error {
	if i < 0 || i >= len(d.Rooms) {
		return fmt.Errorf("room group index %d out of range [0,%d)", i, len(d.Rooms))
	}
	g := &d.Rooms[i]
	if p.Quantity != nil {
		g.Quantity = *p.Quantity
	}
	if p.PricePerNight != nil {
		g.PricePerNight = *p.PricePerNight
	}
	if p.RoomNames != nil {
		g.RoomNames = append([]string(nil), p.RoomNames...)
	}
	return nil
}

// ToggleAmenity adds the amenity if absent, removes it if present. Display
// casing is kept as entered; normalization happens only at assembly.
func ToggleAmenity(d *domain.HomestayDraft, name string) {
	for i, a := range d.Amenities {
		if a == name {
			d.Amenities = append(d.Amenities[:i], d.Amenities[i+1:]...)
			return
		}
	}
	d.Amenities = append(d.Amenities, name)
}

// ResetDraft replaces the whole draft with the empty initial value.
func ResetDraft(d *domain.HomestayDraft) {
	*d = domain.EmptyDraft()
}
