package main

import (
	"context"
	"testing"

	"github.com/Cinemaker123/nutrition-tracker/internal/bot/state"
	"github.com/Cinemaker123/nutrition-tracker/internal/config"
	"github.com/alicebob/miniredis/v2"
)

func TestNewStateManager(t *testing.T) {
	ctx := context.Background()

	t.Run("in memory without redis host", func(t *testing.T) {
		sm, err := newStateManager(ctx, config.RedisConfig{})
		if err != nil {
			t.Fatal(err)
		}
		defer sm.Close()
		if _, ok := sm.(*state.Manager); !ok {
			t.Errorf("got %T, want *state.Manager", sm)
		}
	})

	t.Run("redis when configured", func(t *testing.T) {
		mr := miniredis.RunT(t)
		sm, err := newStateManager(ctx, config.RedisConfig{Host: mr.Host(), Port: mr.Port()})
		if err != nil {
			t.Fatal(err)
		}
		defer sm.Close()
		if _, ok := sm.(*state.RedisManager); !ok {
			t.Errorf("got %T, want *state.RedisManager", sm)
		}
	})

	// run returns this error before the HTTP server is started
	t.Run("unreachable redis fails", func(t *testing.T) {
		mr, err := miniredis.Run()
		if err != nil {
			t.Fatal(err)
		}
		host, port := mr.Host(), mr.Port()
		mr.Close()
		if sm, err := newStateManager(ctx, config.RedisConfig{Host: host, Port: port}); err == nil {
			sm.Close()
			t.Fatal("expected a connection error")
		}
	})
}
