package app

import (
	"strconv"
	"strings"

	"homestay_wizard/internal/domain"
)

// Payload assembly: the draft is edit-shaped (free-text price, display-cased
// amenities); the platform API wants the normalized wire shape. Assembly
// never mutates the draft — a failed submission must leave it intact.

// AssemblePayload builds the create/update payload from a draft.
func AssemblePayload(d domain.HomestayDraft) domain.HomestayPayload {
	p := domain.HomestayPayload{
		Name:           strings.TrimSpace(d.Name),
		Description:    strings.TrimSpace(d.Description),
		Address:        d.Address,
		PricePerNight:  parsePrice(d.PricePerNight),
		Images:         append([]string(nil), d.Images...),
		Featured:       d.Featured,
		RequireDeposit: d.RequireDeposit,
	}

	if embed := strings.TrimSpace(d.GoogleMapsEmbed); embed != "" {
		p.GoogleMapsEmbed = &embed
	}

	p.Rooms = make([]domain.RoomPayload, 0, len(d.Rooms))
	for _, g := range d.Rooms {
		names := make([]string, len(g.RoomNames))
		for i, n := range g.RoomNames {
			names[i] = strings.TrimSpace(n)
		}
		p.Rooms = append(p.Rooms, domain.RoomPayload{
			Type:          g.Type,
			Quantity:      g.Quantity,
			PricePerNight: g.PricePerNight,
			RoomNames:     names,
		})
	}

	p.Amenities = make([]string, 0, len(d.Amenities))
	for _, a := range d.Amenities {
		p.Amenities = append(p.Amenities, NormalizeAmenity(a))
	}

	return p
}

// NormalizeAmenity canonicalizes an amenity for the wire. The draft keeps
// the casing the user saw; storage gets one consistent form.
func NormalizeAmenity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// parsePrice parses the advisory price text. The field is informational
// (authoritative pricing lives in the room groups), so an unparseable value
// degrades to 0 instead of failing the submission.
func parsePrice(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
