package redisjob

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestJob_DrainsInOrder(t *testing.T) {
	_, client := setupRedis(t)
	ctx := context.Background()

	if err := client.RPush(ctx, "frontier", "a", "b", "c").Err(); err != nil {
		t.Fatalf("RPush: %v", err)
	}

	job := New(ctx, client, "frontier", 2)
	var got []string
	for !job.IsEmpty() {
		got = append(got, job.Next())
	}

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestJob_EmptyListIsImmediatelyEmpty(t *testing.T) {
	_, client := setupRedis(t)
	job := New(context.Background(), client, "nothing-here", 10)
	if !job.IsEmpty() {
		t.Fatalf("expected IsEmpty on a list that was never populated")
	}
}

func TestJob_ClearStopsConsumption(t *testing.T) {
	_, client := setupRedis(t)
	ctx := context.Background()
	if err := client.RPush(ctx, "frontier", "a", "b").Err(); err != nil {
		t.Fatalf("RPush: %v", err)
	}

	job := New(ctx, client, "frontier", 10)
	job.Clear()
	if !job.IsEmpty() {
		t.Fatalf("expected IsEmpty after Clear")
	}
}

func TestJob_BatchSizeLessThanOneTreatedAsOne(t *testing.T) {
	_, client := setupRedis(t)
	ctx := context.Background()
	if err := client.RPush(ctx, "frontier", "a").Err(); err != nil {
		t.Fatalf("RPush: %v", err)
	}

	job := New(ctx, client, "frontier", 0)
	if job.IsEmpty() {
		t.Fatalf("expected at least one element")
	}
	if got := job.Next(); got != "a" {
		t.Fatalf("got %q, want %q", got, "a")
	}
}
