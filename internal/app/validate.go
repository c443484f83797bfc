package app

import (
	"fmt"
	"strings"

	"homestay_wizard/internal/domain"
)

// Step validation gates forward navigation. Rules run in a fixed order and
// stop at the first failure, so at most one reason is ever reported — the
// mobile client shows a single alert, never an aggregated list.

// ValidationError carries the step and the one human-readable reason that
// blocked it.
type ValidationError struct {
	Step   domain.Step
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Reason)
}

func fail(s domain.Step, format string, args ...any) error {
	return &ValidationError{Step: s, Reason: fmt.Sprintf(format, args...)}
}

// ValidateStep checks the rules for one step against the draft.
func ValidateStep(d *domain.HomestayDraft, s domain.Step) error {
	switch s {
	case domain.StepBasicInfo:
		return validateBasicInfo(d)
	case domain.StepRoomTypes:
		return validateRoomTypes(d)
	case domain.StepRoomNaming:
		return validateRoomNaming(d)
	case domain.StepAmenities:
		return ValidateForm(d)
	}
	return fail(s, "unknown step")
}

// ValidateForm is the full-form check run before submission: basic info and
// room types re-validated as a defense against stale state. Room names are
// reconciled (not rejected) by that point, so they are not re-checked here.
func ValidateForm(d *domain.HomestayDraft) error {
	if err := validateBasicInfo(d); err != nil {
		return err
	}
	return validateRoomTypes(d)
}

func validateBasicInfo(d *domain.HomestayDraft) error {
	s := domain.StepBasicInfo
	if strings.TrimSpace(d.Name) == "" {
		return fail(s, "name is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		return fail(s, "description is required")
	}
	if d.Address.Empty() {
		return fail(s, "address is required")
	}
	if len(d.Images) == 0 {
		return fail(s, "at least one image is required")
	}
	return nil
}

func validateRoomTypes(d *domain.HomestayDraft) error {
	s := domain.StepRoomTypes
	if len(d.Rooms) == 0 {
		return fail(s, "select at least one room type")
	}
	for _, g := range d.Rooms {
		if g.Quantity < 1 {
			return fail(s, "room type %s needs a quantity of at least 1", g.Type)
		}
		if g.PricePerNight <= 0 {
			return fail(s, "room type %s needs a price per night", g.Type)
		}
	}
	return nil
}

func validateRoomNaming(d *domain.HomestayDraft) error {
	s := domain.StepRoomNaming
	for _, g := range d.Rooms {
		for i := 0; i < g.Quantity; i++ {
			if i >= len(g.RoomNames) || strings.TrimSpace(g.RoomNames[i]) == "" {
				return fail(s, "room type %s needs %d room names", g.Type, g.Quantity)
			}
		}
	}
	return nil
}
