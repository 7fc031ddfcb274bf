package state_test

import (
	"context"
	"testing"
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/bot/state"
	"github.com/Cinemaker123/nutrition-tracker/internal/config"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/alicebob/miniredis/v2"
)

// exercise runs the checks every StateManager must pass
func exercise(t *testing.T, m state.StateManager, expire func(time.Duration)) {
	t.Helper()
	ctx := context.Background()
	const chat = int64(42)

	if s, err := m.GetUserState(ctx, chat); err != nil || s != state.None {
		t.Errorf("initial state = %q, %v", s, err)
	}
	if err := m.SetUserState(ctx, chat, state.WaitingForPassword); err != nil {
		t.Fatal(err)
	}
	if s, _ := m.GetUserState(ctx, chat); s != state.WaitingForPassword {
		t.Errorf("state = %q", s)
	}
	if err := m.SetUserState(ctx, chat, state.None); err != nil {
		t.Fatal(err)
	}
	if s, _ := m.GetUserState(ctx, chat); s != state.None {
		t.Errorf("state after reset = %q", s)
	}

	if ok, _ := m.IsAuthorized(ctx, chat); ok {
		t.Error("authorized before login")
	}
	if err := m.Authorize(ctx, chat, time.Hour); err != nil {
		t.Fatal(err)
	}
	if ok, _ := m.IsAuthorized(ctx, chat); !ok {
		t.Error("not authorized after login")
	}
	if ok, _ := m.IsAuthorized(ctx, chat+1); ok {
		t.Error("authorization leaked to another chat")
	}
	expire(2 * time.Hour)
	if ok, _ := m.IsAuthorized(ctx, chat); ok {
		t.Error("authorization did not expire")
	}

	m.Authorize(ctx, chat, time.Hour)
	m.Revoke(ctx, chat)
	if ok, _ := m.IsAuthorized(ctx, chat); ok {
		t.Error("authorized after revoke")
	}

	if _, ok, err := m.SelectedDate(ctx, chat); ok || err != nil {
		t.Errorf("selected date before set: %v %v", ok, err)
	}
	d := domain.MustParseDate("2025-03-10")
	if err := m.SetSelectedDate(ctx, chat, d); err != nil {
		t.Fatal(err)
	}
	if got, ok, err := m.SelectedDate(ctx, chat); !ok || err != nil || got != d {
		t.Errorf("selected date = %s %v %v", got, ok, err)
	}
}

func TestManager(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m := state.NewManager().WithClock(func() time.Time { return now })
	exercise(t, m, func(d time.Duration) { now = now.Add(d) })
}

func TestRedisManager(t *testing.T) {
	mr := miniredis.RunT(t)
	m, err := state.NewRedisManager(context.Background(), config.RedisConfig{Host: mr.Host(), Port: mr.Port()})
	if err != nil {
		t.Fatalf("NewRedisManager: %v", err)
	}
	defer m.Close()

	exercise(t, m, mr.FastForward)

	if ttl := mr.TTL("chat:42:date"); ttl != 24*time.Hour {
		t.Errorf("date ttl = %v", ttl)
	}
}

func TestRedisManagerUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	if _, err := state.NewRedisManager(context.Background(), config.RedisConfig{Host: host, Port: port}); err == nil {
		t.Fatal("expected a connection error")
	}
}
