package app_test

import (
	"errors"
	"strings"
	"testing"

	"homestay_wizard/internal/app"
	"homestay_wizard/internal/domain"
)

func validDraft() domain.HomestayDraft {
	return domain.HomestayDraft{
		Name:          "Sunrise Homestay",
		Description:   "Two minutes from the beach",
		Address:       domain.Address{Province: "Quang Nam", District: "Hoi An", Ward: "Cam Chau", Street: "12 Tran Phu"},
		PricePerNight: "450000",
		Images:        []string{"img-1"},
		ImageURIs:     []string{"https://cdn.example.com/img-1.jpg"},
		Amenities:     []string{"Wifi", "POOL"},
		Rooms: []domain.RoomGroup{
			{Type: domain.RoomDeluxe, Quantity: 2, PricePerNight: 120, RoomNames: []string{"Deluxe 1", "Deluxe 2"}},
		},
	}
}

func reason(t *testing.T, err error) (domain.Step, string) {
	t.Helper()
	var ve *app.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return ve.Step, ve.Reason
}

func TestValidateStep_BasicInfo_Sequential(t *testing.T) {
	d := validDraft()
	d.Name = "   "
	d.Description = ""

	// both name and description are bad; only the first rule fires
	_, r := reason(t, app.ValidateStep(&d, domain.StepBasicInfo))
	if !strings.Contains(r, "name") {
		t.Fatalf("expected name failure first, got %q", r)
	}

	d.Name = "ok"
	_, r = reason(t, app.ValidateStep(&d, domain.StepBasicInfo))
	if !strings.Contains(r, "description") {
		t.Fatalf("expected description failure next, got %q", r)
	}

	d.Description = "ok"
	d.Address = domain.Address{}
	_, r = reason(t, app.ValidateStep(&d, domain.StepBasicInfo))
	if !strings.Contains(r, "address") {
		t.Fatalf("expected address failure, got %q", r)
	}

	d.Address = validDraft().Address
	d.Images = nil
	_, r = reason(t, app.ValidateStep(&d, domain.StepBasicInfo))
	if !strings.Contains(r, "image") {
		t.Fatalf("expected image failure, got %q", r)
	}
}

func TestValidateStep_RoomTypes_ShortCircuit(t *testing.T) {
	// Draft violating two rules at once: no valid quantity AND no valid
	// price. Exactly one failure must be reported, the first checked.
	d := validDraft()
	d.Rooms = []domain.RoomGroup{
		{Type: domain.RoomDeluxe, Quantity: 0, PricePerNight: 0, RoomNames: []string{}},
		{Type: domain.RoomFamily, Quantity: 1, PricePerNight: 0, RoomNames: []string{""}},
	}
	step, r := reason(t, app.ValidateStep(&d, domain.StepRoomTypes))
	if step != domain.StepRoomTypes {
		t.Fatalf("wrong step: %v", step)
	}
	if !strings.Contains(r, "quantity") || !strings.Contains(r, string(domain.RoomDeluxe)) {
		t.Fatalf("expected first group's quantity problem only, got %q", r)
	}

	d.Rooms = nil
	_, r = reason(t, app.ValidateStep(&d, domain.StepRoomTypes))
	if !strings.Contains(r, "at least one room type") {
		t.Fatalf("expected empty-rooms failure, got %q", r)
	}
}

func TestValidateStep_RoomNaming(t *testing.T) {
	d := validDraft()
	d.Rooms[0].RoomNames = []string{"Deluxe 1", "   "}

	_, r := reason(t, app.ValidateStep(&d, domain.StepRoomNaming))
	if !strings.Contains(r, string(domain.RoomDeluxe)) || !strings.Contains(r, "2") {
		t.Fatalf("message should name the type and expected count, got %q", r)
	}

	d.Rooms[0].RoomNames = []string{"Deluxe 1", "Deluxe 2"}
	if err := app.ValidateStep(&d, domain.StepRoomNaming); err != nil {
		t.Fatalf("valid naming rejected: %v", err)
	}
}

func TestValidateStep_Amenities_IsFullFormCheck(t *testing.T) {
	d := validDraft()
	if err := app.ValidateStep(&d, domain.StepAmenities); err != nil {
		t.Fatalf("valid draft rejected at final step: %v", err)
	}

	// stale state: rooms cleared after the room step passed
	d.Rooms = nil
	step, _ := reason(t, app.ValidateStep(&d, domain.StepAmenities))
	if step != domain.StepRoomTypes {
		t.Fatalf("full-form check should re-run room rules, got step %v", step)
	}
}

func TestValidateForm_ValidDraftPasses(t *testing.T) {
	d := validDraft()
	if err := app.ValidateForm(&d); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}
