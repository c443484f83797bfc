package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "homestay_wizard/internal/adapters/redis"
	"homestay_wizard/internal/domain"
)

func newStore(t *testing.T) (*redisad.Sessions, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.New(mr.Addr(), "", 0), mr
}

func TestSessions_PutGetDel(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	sess := domain.Session{
		ID:   "abc",
		Step: domain.StepRoomTypes,
		Draft: domain.HomestayDraft{
			Name: "Mountain View",
			Rooms: []domain.RoomGroup{
				{Type: domain.RoomDeluxe, Quantity: 2, PricePerNight: 120, RoomNames: []string{"D1", "D2"}},
			},
		},
	}
	if err := store.Put(ctx, sess, 900); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Draft.Name != "Mountain View" || got.Step != domain.StepRoomTypes {
		t.Fatalf("unexpected session: %+v", got)
	}
	if len(got.Draft.Rooms) != 1 || got.Draft.Rooms[0].RoomNames[1] != "D2" {
		t.Fatalf("room groups did not round-trip: %+v", got.Draft.Rooms)
	}

	if err := store.Del(ctx, "abc"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "abc"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestSessions_TTLExpiry(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, domain.Session{ID: "ttl"}, 10); err != nil {
		t.Fatalf("put: %v", err)
	}
	mr.FastForward(11 * time.Second)

	if _, ok, _ := store.Get(ctx, "ttl"); ok {
		t.Fatalf("expected session to expire")
	}
}

func TestSessions_MissIsNotError(t *testing.T) {
	store, _ := newStore(t)
	_, ok, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("miss must not be an error: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}
