package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemory_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if err := c.Put(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}
	v, err := c.Get(ctx, "k")
	if err != nil || v != "v" {
		t.Fatalf("Get = (%q, %v), want (v, nil)", v, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if err := c.Put(ctx, "k", "v", -time.Second); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired Get = %v, want ErrNotFound", err)
	}
}

func TestMemory_MissingKey(t *testing.T) {
	c := NewMemory()
	if _, err := c.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get = %v, want ErrNotFound", err)
	}
}
