package store

import (
	"context"
	"testing"
)

func TestRegistry(t *testing.T) {
	called := ""
	Register("fake", func(ctx context.Context, conn string) (Store, error) {
		called = conn
		return nil, nil
	})

	if _, err := Open(context.Background(), "fake", "dsn://x"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if called != "dsn://x" {
		t.Errorf("opener got %q, want dsn://x", called)
	}

	found := false
	for _, name := range Drivers() {
		if name == "fake" {
			found = true
		}
	}
	if !found {
		t.Error("Drivers() should include registered driver")
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "nonexistent", "")
	if err == nil {
		t.Error("Expected error for unknown driver, got nil")
	}
}
