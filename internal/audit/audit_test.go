package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/redwireai/storefront/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database, zerolog.Nop())
}

func TestLogAndGetByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	entry := Entry{
		ID:            "test-1",
		Actor:         ActorAdmin,
		Action:        ActionSettingsUpdate,
		Target:        "settings",
		Field:         "heroHeading",
		PreviousValue: "Old",
		NewValue:      "New",
	}
	if err := store.Log(ctx, entry); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := store.GetByID(ctx, "test-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Actor != ActorAdmin || got.Action != ActionSettingsUpdate {
		t.Errorf("got actor %q action %q", got.Actor, got.Action)
	}
	if got.Field != "heroHeading" || got.PreviousValue != "Old" || got.NewValue != "New" {
		t.Errorf("entry = %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected timestamp")
	}
}

func TestLogGeneratesUUID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Log(ctx, Entry{Actor: ActorSystem, Action: ActionSettingsImport, Target: "settings"}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	entries, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 || len(entries[0].ID) != 36 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestLogRejectsUnknownActor(t *testing.T) {
	store := setupStore(t)
	err := store.Log(context.Background(), Entry{Actor: "robot", Action: ActionRebrandApply})
	if err == nil {
		t.Error("expected constraint violation for unknown actor")
	}
}

func TestLogTruncatesLargeValues(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	big := "data:image/png;base64," + strings.Repeat("A", 10000)
	if err := store.Log(ctx, Entry{ID: "img", Actor: ActorAI, Action: ActionImageGenerate, Target: "settings", NewValue: big}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	got, err := store.GetByID(ctx, "img")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.NewValue) >= len(big) {
		t.Errorf("value not truncated: %d bytes", len(got.NewValue))
	}
}

func TestQueryNewestFirstWithFilters(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{ID: "a", Timestamp: base, Actor: ActorAdmin, Action: ActionSettingsUpdate, Target: "settings"},
		{ID: "b", Timestamp: base.Add(time.Millisecond), Actor: ActorAI, Action: ActionRebrandApply, Target: "settings"},
		{ID: "c", Timestamp: base.Add(2 * time.Millisecond), Actor: ActorAdmin, Action: ActionProductUpdate, Target: "chatbot"},
	}
	for _, e := range entries {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	all, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(all) != 3 || all[0].ID != "c" || all[2].ID != "a" {
		t.Errorf("order = %v", ids(all))
	}

	admin, _ := store.Query(ctx, QueryFilter{Actor: ActorAdmin})
	if len(admin) != 2 {
		t.Errorf("admin entries = %v", ids(admin))
	}

	product, _ := store.Query(ctx, QueryFilter{Target: "chatbot"})
	if len(product) != 1 || product[0].ID != "c" {
		t.Errorf("chatbot entries = %v", ids(product))
	}

	page, _ := store.Query(ctx, QueryFilter{Limit: 1, Offset: 1})
	if len(page) != 1 || page[0].ID != "b" {
		t.Errorf("page = %v", ids(page))
	}
}

func TestDeleteBefore(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)

	store.Log(ctx, Entry{ID: "old", Timestamp: old, Actor: ActorAdmin, Action: ActionSettingsUpdate})
	store.Log(ctx, Entry{ID: "new", Actor: ActorAdmin, Action: ActionSettingsUpdate})

	n, err := store.DeleteBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
}

func TestHTTPQueryAll(t *testing.T) {
	store := setupStore(t)
	store.Record(context.Background(), Entry{ID: "x", Actor: ActorAdmin, Action: ActionBlogCreate, Target: "post-1"})

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest(http.MethodGet, "/audit/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got []Entry
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Target != "post-1" {
		t.Errorf("got %+v", got)
	}
}

func TestHTTPGetByIDNotFound(t *testing.T) {
	store := setupStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest(http.MethodGet, "/audit/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
