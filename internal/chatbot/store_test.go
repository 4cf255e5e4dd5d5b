package chatbot

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matterai/timesheet-backend/internal/entity"
)

func TestStoreCreateAndGet(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)

	session := store.Create()
	if session.ID == "" {
		t.Fatalf("expected a session identifier")
	}

	got, err := store.Get(session.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != session {
		t.Fatalf("expected the same session instance back")
	}
}

func TestStoreGetUnknown(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)

	_, err := store.Get("no-such-session")
	if !errors.Is(err, entity.ErrChatSessionNotFound) {
		t.Fatalf("err = %v, want ErrChatSessionNotFound", err)
	}
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	session := store.Create()

	if !store.Delete(session.ID) {
		t.Fatalf("expected delete of existing session to report true")
	}
	if store.Delete(session.ID) {
		t.Fatalf("expected second delete to report false")
	}
	if _, err := store.Get(session.ID); !errors.Is(err, entity.ErrChatSessionNotFound) {
		t.Fatalf("expected deleted session to be unknown, got %v", err)
	}
}

func TestStoreConcurrentDeleteHasOneWinner(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	session := store.Create()

	const deleters = 16
	results := make(chan bool, deleters)

	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < deleters; i++ {
		go func() {
			start.Wait()
			results <- store.Delete(session.ID)
		}()
	}
	start.Done()

	wins := 0
	for i := 0; i < deleters; i++ {
		if <-results {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("deletes reporting true = %d, want exactly 1", wins)
	}
}

func TestStoreExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore(20 * time.Millisecond)
	session := store.Create()

	time.Sleep(50 * time.Millisecond)

	if _, err := store.Get(session.ID); !errors.Is(err, entity.ErrChatSessionNotFound) {
		t.Fatalf("expected expired session to be unknown, got %v", err)
	}
}

func TestStoreListAndCount(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	a := store.Create()
	b := store.Create()

	if store.Count() != 2 {
		t.Fatalf("count = %d, want 2", store.Count())
	}

	ids := map[string]bool{}
	for _, id := range store.List() {
		ids[id] = true
	}
	if !ids[a.ID] || !ids[b.ID] {
		t.Fatalf("list %v missing created sessions", store.List())
	}
}
