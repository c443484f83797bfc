// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"homestay_wizard/internal/adapters/observability"
	"homestay_wizard/internal/app"
	"homestay_wizard/internal/domain"
)

type Handlers struct{ W *app.Wizard }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/wizard", h.start)
	s.mux.Get("/v1/wizard/{sid}", h.get)
	s.mux.Delete("/v1/wizard/{sid}", h.abandon)
	s.mux.Patch("/v1/wizard/{sid}/draft", h.patchDraft)
	s.mux.Delete("/v1/wizard/{sid}/images/{index}", h.removeImage)
	s.mux.Post("/v1/wizard/{sid}/rooms/toggle", h.toggleRoom)
	s.mux.Patch("/v1/wizard/{sid}/rooms/{type}", h.patchRoom)
	s.mux.Post("/v1/wizard/{sid}/amenities/toggle", h.toggleAmenity)
	s.mux.Post("/v1/wizard/{sid}/next", h.next)
	s.mux.Post("/v1/wizard/{sid}/back", h.back)
	s.mux.Post("/v1/wizard/{sid}/submit", h.submit)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

type sessionResponse struct {
	SessionID  string               `json:"sessionId"`
	Mode       string               `json:"mode"`
	HomestayID string               `json:"homestayId,omitempty"`
	Step       string               `json:"step"`
	Draft      domain.HomestayDraft `json:"draft"`
}

func toResponse(s domain.Session) sessionResponse {
	mode := domain.ModeCreate
	if s.EditMode() {
		mode = domain.ModeUpdate
	}
	return sessionResponse{
		SessionID:  s.ID,
		Mode:       mode,
		HomestayID: s.HomestayID,
		Step:       s.Step.String(),
		Draft:      s.Draft,
	}
}

// respondMutation maps the errors wizard mutations can return onto statuses:
// missing session 404, failed step validation 422 (with the single first
// failing reason), anything else a client mistake 400.
func respondMutation(w http.ResponseWriter, s domain.Session, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, toResponse(s))
		return
	}
	var ve *app.ValidationError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "wizard session not found")
	case errors.As(err, &ve):
		observability.ObserveValidationFailure(ve.Step.String())
		writeProblem(w, http.StatusUnprocessableEntity, "Validation Failed", ve.Reason)
	default:
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	}
}

func (h *Handlers) start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HomestayID string `json:"homestayId"`
	}
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
			return
		}
	}
	s, err := h.W.Begin(r.Context(), req.HomestayID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "homestay not found")
			return
		}
		writeProblem(w, http.StatusBadGateway, "Upstream Error", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toResponse(s))
}

func (h *Handlers) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.W.Get(r.Context(), chi.URLParam(r, "sid"))
	respondMutation(w, s, err)
}

func (h *Handlers) abandon(w http.ResponseWriter, r *http.Request) {
	if err := h.W.Abandon(r.Context(), chi.URLParam(r, "sid")); err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type draftPatchRequest struct {
	Name            *string         `json:"name"`
	Description     *string         `json:"description"`
	GoogleMapsEmbed *string         `json:"googleMapsEmbed"`
	PricePerNight   *string         `json:"pricePerNight"`
	Featured        *bool           `json:"featured"`
	RequireDeposit  *bool           `json:"requireDeposit"`
	Address         *domain.Address `json:"address"`
	Images          *struct {
		IDs  []string `json:"ids"`
		URIs []string `json:"uris"`
	} `json:"images"`
}

func (h *Handlers) patchDraft(w http.ResponseWriter, r *http.Request) {
	var req draftPatchRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	s, err := h.W.Update(r.Context(), chi.URLParam(r, "sid"), func(s *domain.Session) error {
		app.ApplyDraftPatch(&s.Draft, app.DraftPatch{
			Name:            req.Name,
			Description:     req.Description,
			GoogleMapsEmbed: req.GoogleMapsEmbed,
			PricePerNight:   req.PricePerNight,
			Featured:        req.Featured,
			RequireDeposit:  req.RequireDeposit,
		})
		if req.Address != nil {
			app.SetAddress(&s.Draft, *req.Address)
		}
		if req.Images != nil {
			return app.SetImages(&s.Draft, req.Images.IDs, req.Images.URIs)
		}
		return nil
	})
	respondMutation(w, s, err)
}

func (h *Handlers) removeImage(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "image index must be a number")
		return
	}
	s, err := h.W.Update(r.Context(), chi.URLParam(r, "sid"), func(s *domain.Session) error {
		return app.RemoveImage(&s.Draft, idx)
	})
	respondMutation(w, s, err)
}

func (h *Handlers) toggleRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type domain.RoomType `json:"type"`
	}
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	s, err := h.W.Update(r.Context(), chi.URLParam(r, "sid"), func(s *domain.Session) error {
		return app.ToggleRoomType(&s.Draft, req.Type)
	})
	respondMutation(w, s, err)
}

type roomPatchRequest struct {
	Quantity      *int     `json:"quantity"`
	PricePerNight *float64 `json:"pricePerNight"`
	RoomNames     []string `json:"roomNames"`
}

func (h *Handlers) patchRoom(w http.ResponseWriter, r *http.Request) {
	rt := domain.RoomType(chi.URLParam(r, "type"))
	var req roomPatchRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	s, err := h.W.Update(r.Context(), chi.URLParam(r, "sid"), func(s *domain.Session) error {
		if req.Quantity != nil {
			if err := app.SetRoomQuantity(&s.Draft, rt, *req.Quantity); err != nil {
				return err
			}
		}
		if req.PricePerNight != nil {
			if err := app.SetRoomPrice(&s.Draft, rt, *req.PricePerNight); err != nil {
				return err
			}
		}
		if req.RoomNames != nil {
			return app.SetRoomNames(&s.Draft, rt, req.RoomNames)
		}
		return nil
	})
	respondMutation(w, s, err)
}

func (h *Handlers) toggleAmenity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil || req.Name == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "amenity name is required")
		return
	}
	s, err := h.W.Update(r.Context(), chi.URLParam(r, "sid"), func(s *domain.Session) error {
		app.ToggleAmenity(&s.Draft, req.Name)
		return nil
	})
	respondMutation(w, s, err)
}

func (h *Handlers) next(w http.ResponseWriter, r *http.Request) {
	s, err := h.W.Next(r.Context(), chi.URLParam(r, "sid"))
	respondMutation(w, s, err)
}

func (h *Handlers) back(w http.ResponseWriter, r *http.Request) {
	s, err := h.W.Back(r.Context(), chi.URLParam(r, "sid"))
	respondMutation(w, s, err)
}

type submitResponse struct {
	domain.Envelope
	Draft domain.HomestayDraft `json:"draft"`
	Step  string               `json:"step"`
}

func (h *Handlers) submit(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")

	// Mode is needed for the metric label before Submit can change the session.
	s, err := h.W.Get(r.Context(), sid)
	if err != nil {
		respondMutation(w, s, err)
		return
	}
	mode := domain.ModeCreate
	if s.EditMode() {
		mode = domain.ModeUpdate
	}

	env, err := h.W.Submit(r.Context(), sid)
	if err != nil {
		var ve *app.ValidationError
		if errors.As(err, &ve) {
			observability.ObserveValidationFailure(ve.Step.String())
			writeProblem(w, http.StatusUnprocessableEntity, "Validation Failed", ve.Reason)
			return
		}
		observability.ObserveSubmission(mode, "error")
		writeProblem(w, http.StatusBadGateway, "Upstream Error", err.Error())
		return
	}

	if env.Success {
		observability.ObserveSubmission(mode, "ok")
	} else {
		observability.ObserveSubmission(mode, "rejected")
	}

	// The draft after submission: reset for a successful create, untouched
	// otherwise. Return it so the client does not need a second round trip.
	after, gerr := h.W.Get(r.Context(), sid)
	if gerr != nil {
		writeJSON(w, http.StatusOK, env)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{Envelope: env, Draft: after.Draft, Step: after.Step.String()})
}
