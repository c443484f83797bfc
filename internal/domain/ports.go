package domain

import (
	"context"
	"encoding/json"
	"time"
)

// PlatformClient is the external homestay platform API. The wizard never
// persists homestays itself; create/update go through this port and the
// platform answers with a success/failure envelope.
type PlatformClient interface {
	CreateHomestay(ctx context.Context, p HomestayPayload) (Envelope, error)
	UpdateHomestay(ctx context.Context, id string, p HomestayPayload) (Envelope, error)
	GetHomestay(ctx context.Context, id string) (HomestayDetail, error)
}

// SessionStore holds wizard sessions keyed by session id. Get reports
// existence separately from errors so a missing session is not a transport
// failure.
type SessionStore interface {
	Get(ctx context.Context, id string) (Session, bool, error)
	Put(ctx context.Context, s Session, ttlSec int) error
	Del(ctx context.Context, id string) error
}

// SubmissionLog is the audit trail of create/update attempts.
type SubmissionLog interface {
	Record(ctx context.Context, rec SubmissionRecord) error
	Recent(ctx context.Context, limit int) ([]SubmissionRecord, error)
}

// Session is one wizard run: the draft plus where the user is in the flow.
// HomestayID is set when the wizard was entered in edit mode and never
// changes mid-flow.
type Session struct {
	ID         string        `json:"id"`
	HomestayID string        `json:"homestayId,omitempty"`
	Step       Step          `json:"step"`
	Draft      HomestayDraft `json:"draft"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

func (s *Session) EditMode() bool { return s.HomestayID != "" }

// Envelope is the discriminated response shape the platform API returns for
// writes. Message is shown verbatim to the user when Success is false.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// HomestayPayload is the exact wire shape for create/update calls.
// GoogleMapsEmbed is omitted (not sent as "") when absent.
type HomestayPayload struct {
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Address         Address       `json:"address"`
	GoogleMapsEmbed *string       `json:"googleMapsEmbed,omitempty"`
	PricePerNight   float64       `json:"pricePerNight"`
	Images          []string      `json:"images"`
	Featured        bool          `json:"featured"`
	RequireDeposit  bool          `json:"requireDeposit"`
	Rooms           []RoomPayload `json:"rooms"`
	Amenities       []string      `json:"amenities"`
}

type RoomPayload struct {
	Type          RoomType `json:"type"`
	Quantity      int      `json:"quantity"`
	PricePerNight float64  `json:"pricePerNight"`
	RoomNames     []string `json:"roomNames"`
}

// HomestayDetail is what GetHomestay returns; used to prefill an edit-mode
// draft.
type HomestayDetail struct {
	ID string `json:"id"`
	HomestayPayload
}

// SubmissionRecord is one row of the audit trail.
type SubmissionRecord struct {
	SessionID  string
	HomestayID *string // nil for create attempts
	Mode       string  // "create" | "update"
	Success    bool
	Message    *string
	CreatedAt  time.Time
}

const (
	ModeCreate = "create"
	ModeUpdate = "update"
)
