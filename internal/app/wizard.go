package app

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"homestay_wizard/internal/domain"
)

// Wizard owns the draft sessions: one draft per session, mutated between
// steps, validated on every forward transition and submitted once at the
// end. The draft's lifetime is scoped to the session — no ambient shared
// state.
type Wizard struct {
	sessions domain.SessionStore
	platform domain.PlatformClient
	audit    domain.SubmissionLog // optional; nil disables the audit trail
	ttlSec   int
}

func NewWizard(s domain.SessionStore, p domain.PlatformClient, a domain.SubmissionLog, ttl time.Duration) *Wizard {
	return &Wizard{sessions: s, platform: p, audit: a, ttlSec: int(ttl.Seconds())}
}

// Begin starts a session. An empty homestayID means create mode with an
// empty draft; otherwise the draft is prefilled from the platform and every
// later submission updates that homestay.
func (w *Wizard) Begin(ctx context.Context, homestayID string) (domain.Session, error) {
	s := domain.Session{
		ID:        newSessionID(),
		Step:      domain.StepBasicInfo,
		Draft:     domain.EmptyDraft(),
		CreatedAt: time.Now().UTC(),
	}
	if homestayID != "" {
		det, err := w.platform.GetHomestay(ctx, homestayID)
		if err != nil {
			return domain.Session{}, fmt.Errorf("prefill homestay %s: %w", homestayID, err)
		}
		s.HomestayID = homestayID
		s.Draft = prefillDraft(det)
	}
	s.UpdatedAt = s.CreatedAt
	if err := w.sessions.Put(ctx, s, w.ttlSec); err != nil {
		return domain.Session{}, err
	}
	log.Info().Str("session", s.ID).Bool("edit", s.EditMode()).Msg("wizard session started")
	return s, nil
}

func (w *Wizard) Get(ctx context.Context, sid string) (domain.Session, error) {
	s, ok, err := w.sessions.Get(ctx, sid)
	if err != nil {
		return domain.Session{}, err
	}
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s, nil
}

// Update loads the session, applies mutate and saves the result. All draft
// mutations from the HTTP layer funnel through here, so a session only ever
// has one writer per request.
func (w *Wizard) Update(ctx context.Context, sid string, mutate func(*domain.Session) error) (domain.Session, error) {
	s, err := w.Get(ctx, sid)
	if err != nil {
		return domain.Session{}, err
	}
	if err := mutate(&s); err != nil {
		return domain.Session{}, err
	}
	s.UpdatedAt = time.Now().UTC()
	if err := w.sessions.Put(ctx, s, w.ttlSec); err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

// Next validates the current step and advances on success. Entering the
// naming step runs the room-name repair pass first, so the user always sees
// exactly quantity name slots.
func (w *Wizard) Next(ctx context.Context, sid string) (domain.Session, error) {
	return w.Update(ctx, sid, func(s *domain.Session) error {
		if err := ValidateStep(&s.Draft, s.Step); err != nil {
			return err
		}
		next, ok := s.Step.Next()
		if !ok {
			return fmt.Errorf("already on the final step")
		}
		s.Step = next
		if s.Step == domain.StepRoomNaming {
			ReconcileDraft(&s.Draft)
		}
		return nil
	})
}

// Back never validates; going backward loses nothing and re-entering the
// naming step repairs drift the same way Next does.
func (w *Wizard) Back(ctx context.Context, sid string) (domain.Session, error) {
	return w.Update(ctx, sid, func(s *domain.Session) error {
		prev, ok := s.Step.Prev()
		if !ok {
			return fmt.Errorf("already on the first step")
		}
		s.Step = prev
		if s.Step == domain.StepRoomNaming {
			ReconcileDraft(&s.Draft)
		}
		return nil
	})
}

// Abandon drops the session and its draft.
func (w *Wizard) Abandon(ctx context.Context, sid string) error {
	return w.sessions.Del(ctx, sid)
}

// Submit runs the full-form check, assembles the payload and dispatches
// create or update depending on how the wizard was entered. A successful
// create resets the draft; a successful update leaves it as-is. Any failure
// leaves the draft untouched so the user can correct and resubmit, and the
// platform's message travels back verbatim.
func (w *Wizard) Submit(ctx context.Context, sid string) (domain.Envelope, error) {
	s, err := w.Get(ctx, sid)
	if err != nil {
		return domain.Envelope{}, err
	}

	ReconcileDraft(&s.Draft)
	if err := ValidateForm(&s.Draft); err != nil {
		return domain.Envelope{}, err
	}

	payload := AssemblePayload(s.Draft)

	var env domain.Envelope
	if s.EditMode() {
		env, err = w.platform.UpdateHomestay(ctx, s.HomestayID, payload)
	} else {
		env, err = w.platform.CreateHomestay(ctx, payload)
	}
	if err != nil {
		w.record(ctx, &s, false, err.Error())
		return domain.Envelope{}, fmt.Errorf("submit homestay: %w", err)
	}
	if !env.Success {
		w.record(ctx, &s, false, env.Message)
		log.Warn().Str("session", s.ID).Str("msg", env.Message).Msg("submission rejected")
		return env, nil
	}

	w.record(ctx, &s, true, env.Message)
	if !s.EditMode() {
		ResetDraft(&s.Draft)
		s.Step = domain.StepBasicInfo
	}
	s.UpdatedAt = time.Now().UTC()
	if err := w.sessions.Put(ctx, s, w.ttlSec); err != nil {
		return env, err
	}
	log.Info().Str("session", s.ID).Bool("edit", s.EditMode()).Msg("submission ok")
	return env, nil
}

func (w *Wizard) record(ctx context.Context, s *domain.Session, ok bool, msg string) {
	if w.audit == nil {
		return
	}
	mode := domain.ModeCreate
	var hid *string
	if s.EditMode() {
		mode = domain.ModeUpdate
		id := s.HomestayID
		hid = &id
	}
	rec := domain.SubmissionRecord{
		SessionID:  s.ID,
		HomestayID: hid,
		Mode:       mode,
		Success:    ok,
		CreatedAt:  time.Now().UTC(),
	}
	if msg != "" {
		rec.Message = &msg
	}
	if err := w.audit.Record(ctx, rec); err != nil {
		// Audit is best-effort; a full log must never block a submission.
		log.Warn().Err(err).Str("session", s.ID).Msg("submission audit write failed")
	}
}

// prefillDraft maps a platform detail back into the editable draft shape.
// The platform returns one URL per image, so identifiers and display URIs
// start out identical.
func prefillDraft(det domain.HomestayDetail) domain.HomestayDraft {
	d := domain.HomestayDraft{
		Name:           det.Name,
		Description:    det.Description,
		Address:        det.Address,
		PricePerNight:  strconv.FormatFloat(det.PricePerNight, 'f', -1, 64),
		Images:         append([]string(nil), det.Images...),
		ImageURIs:      append([]string(nil), det.Images...),
		Featured:       det.Featured,
		RequireDeposit: det.RequireDeposit,
		Amenities:      append([]string(nil), det.Amenities...),
	}
	if det.GoogleMapsEmbed != nil {
		d.GoogleMapsEmbed = *det.GoogleMapsEmbed
	}
	for _, r := range det.Rooms {
		d.Rooms = append(d.Rooms, ReconcileRoomNames(domain.RoomGroup{
			Type:          r.Type,
			Quantity:      r.Quantity,
			PricePerNight: r.PricePerNight,
			RoomNames:     append([]string(nil), r.RoomNames...),
		}))
	}
	return d
}

func newSessionID() string {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b[:])
}
