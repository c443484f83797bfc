package platform_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"homestay_wizard/internal/adapters/platform"
	"homestay_wizard/internal/domain"
)

func payload() domain.HomestayPayload {
	return domain.HomestayPayload{
		Name:        "Sunrise Homestay",
		Description: "desc",
		Address:     domain.Address{Province: "Quang Nam"},
		Images:      []string{"img-1"},
		Rooms: []domain.RoomPayload{
			{Type: domain.RoomDeluxe, Quantity: 1, PricePerNight: 100, RoomNames: []string{"D1"}},
		},
		Amenities: []string{"wifi"},
	}
}

func TestClient_CreateHomestay_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			if r.Method != http.MethodPost {
				t.Errorf("method: %s", r.Method)
			}
			var got domain.HomestayPayload
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("decode body: %v", err)
			}
			if got.Name != "Sunrise Homestay" {
				t.Errorf("payload name: %q", got.Name)
			}
			w.WriteHeader(201)
			_ = json.NewEncoder(w).Encode(domain.Envelope{Success: true, Message: "created"})
		}
	}))
	defer ts.Close()

	cl, err := platform.New(ts.URL, "test-key", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	env, err := cl.CreateHomestay(ctx, payload())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !env.Success || env.Message != "created" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_UpdateHomestay_BusinessRejectionIsNotRetried(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Method != http.MethodPut {
			t.Errorf("method: %s", r.Method)
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(domain.Envelope{Success: false, Message: "deposit required for featured listings"})
	}))
	defer ts.Close()

	cl, _ := platform.New(ts.URL, "test-key", 100)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	env, err := cl.UpdateHomestay(ctx, "h42", payload())
	if err != nil {
		t.Fatalf("rejection must not be a transport error: %v", err)
	}
	if env.Success || env.Message != "deposit required for featured listings" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("rejection retried: %d calls", hits)
	}
}

func TestClient_GetHomestay_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, _ := platform.New(ts.URL, "test-key", 100)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := cl.GetHomestay(ctx, "1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_GetHomestay_DecodesDetail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		det := domain.HomestayDetail{ID: "h7"}
		det.Name = "Riverside"
		data, _ := json.Marshal(det)
		_ = json.NewEncoder(w).Encode(domain.Envelope{Success: true, Data: data})
	}))
	defer ts.Close()

	cl, _ := platform.New(ts.URL, "test-key", 100)
	det, err := cl.GetHomestay(context.Background(), "h7")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if det.ID != "h7" || det.Name != "Riverside" {
		t.Fatalf("unexpected detail: %+v", det)
	}
}

func TestClient_New_RequiresKey(t *testing.T) {
	if _, err := platform.New("http://x", "", 5); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
