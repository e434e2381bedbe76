//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func mongoURI(t *testing.T) string {
	uri := os.Getenv("LABELER_MONGO_URI")
	if uri == "" {
		t.Skip("LABELER_MONGO_URI not set")
	}
	return uri
}

func TestMongoCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewMongoCache(ctx, MongoOptions{URI: mongoURI(t), Database: "labeler_test"})
	if err != nil {
		t.Fatalf("NewMongoCache() error = %v", err)
	}
	defer c.Close()
	defer c.Clear(ctx)

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get(k) = %q, %v, %v", data, hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v2"), 0); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	if data, _, _ := c.Get(ctx, "k"); string(data) != "v2" {
		t.Errorf("Get(k) after overwrite = %q, want v2", data)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry returned")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry returned")
	}
}
