package domain

import "strings"

// RoomType is the fixed catalog of bookable room categories. A draft holds at
// most one RoomGroup per type.
type RoomType string

const (
	RoomStandard RoomType = "standard"
	RoomSuperior RoomType = "superior"
	RoomDeluxe   RoomType = "deluxe"
	RoomFamily   RoomType = "family"
	RoomDorm     RoomType = "dorm"
)

// RoomTypes lists the catalog in display order.
var RoomTypes = []RoomType{RoomStandard, RoomSuperior, RoomDeluxe, RoomFamily, RoomDorm}

func (t RoomType) Valid() bool {
	for _, k := range RoomTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Address is the structured location of a homestay (Vietnamese-style
// administrative levels). The wizard treats it as opaque beyond presence.
type Address struct {
	Province string `json:"province"`
	District string `json:"district"`
	Ward     string `json:"ward"`
	Street   string `json:"street"`
}

func (a Address) Empty() bool {
	return strings.TrimSpace(a.Province) == "" &&
		strings.TrimSpace(a.District) == "" &&
		strings.TrimSpace(a.Ward) == "" &&
		strings.TrimSpace(a.Street) == ""
}

// RoomGroup is a batch of identically-typed rooms sharing one nightly price,
// with individually named instances. RoomNames must have exactly Quantity
// entries whenever the draft reaches the naming step or submission; it may
// drift transiently between a quantity edit and the next reconcile pass.
type RoomGroup struct {
	Type          RoomType `json:"type"`
	Quantity      int      `json:"quantity"`
	PricePerNight float64  `json:"pricePerNight"`
	RoomNames     []string `json:"roomNames"`
}

// HomestayDraft is the in-progress representation of a homestay being created
// or edited. It is mutated only through the draft mutators in internal/app;
// PricePerNight stays free text until the assembler parses it.
//
// Images and ImageURIs are index-aligned parallel arrays: Images holds the
// upload identifiers, ImageURIs the display URIs.
type HomestayDraft struct {
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Address         Address     `json:"address"`
	GoogleMapsEmbed string      `json:"googleMapsEmbed"`
	PricePerNight   string      `json:"pricePerNight"`
	Images          []string    `json:"images"`
	ImageURIs       []string    `json:"imageUris"`
	Featured        bool        `json:"featured"`
	RequireDeposit  bool        `json:"requireDeposit"`
	Amenities       []string    `json:"amenities"`
	Rooms           []RoomGroup `json:"rooms"`
}

// EmptyDraft is the initial value a fresh wizard session starts from and the
// value a draft is reset to after a successful create.
func EmptyDraft() HomestayDraft { return HomestayDraft{} }

// RoomGroupIndex returns the index of the group with the given type, or -1.
func (d *HomestayDraft) RoomGroupIndex(t RoomType) int {
	for i := range d.Rooms {
		if d.Rooms[i].Type == t {
			return i
		}
	}
	return -1
}

// Step identifies one screen of the wizard. Steps are strictly linear.
type Step int

const (
	StepBasicInfo Step = iota
	StepRoomTypes
	StepRoomNaming
	StepAmenities
)

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "basic_info"
	case StepRoomTypes:
		return "room_types"
	case StepRoomNaming:
		return "room_naming"
	case StepAmenities:
		return "amenities"
	}
	return "unknown"
}

func (s Step) Next() (Step, bool) {
	if s >= StepAmenities {
		return s, false
	}
	return s + 1, true
}

func (s Step) Prev() (Step, bool) {
	if s <= StepBasicInfo {
		return s, false
	}
	return s - 1, true
}
