package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/redwireai/storefront/internal/content"
	"github.com/redwireai/storefront/internal/storage"
)

// recordingStore wraps a MemoryStore, counting saves and optionally failing reads.
type recordingStore struct {
	*storage.MemoryStore
	mu      sync.Mutex
	saves   map[string]int
	failGet map[string]error
	getHold chan struct{}
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		MemoryStore: storage.NewMemoryStore(),
		saves:       make(map[string]int),
		failGet:     make(map[string]error),
	}
}

func (r *recordingStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	if r.getHold != nil && key == storage.KeyProducts {
		<-r.getHold
	}
	r.mu.Lock()
	err := r.failGet[key]
	r.mu.Unlock()
	if err != nil {
		return false, err
	}
	return r.MemoryStore.Get(ctx, key, dest)
}

func (r *recordingStore) Save(ctx context.Context, key string, value any) error {
	r.mu.Lock()
	r.saves[key]++
	r.mu.Unlock()
	return r.MemoryStore.Save(ctx, key, value)
}

func (r *recordingStore) saveCount(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves[key]
}

func newTestService(t *testing.T, store storage.Store) *Service {
	t.Helper()
	s := New(store, zerolog.Nop())
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func TestHydrateMergesPartialSettingsOverDefaults(t *testing.T) {
	store := newRecordingStore()
	store.PutRaw(storage.KeySettings, []byte(`{"siteName":"Acme"}`))
	s := newTestService(t, store)

	s.Hydrate(context.Background())

	got := s.Settings()
	if got.SiteName != "Acme" {
		t.Errorf("SiteName = %q, want Acme", got.SiteName)
	}
	if got.HeroHeading != content.DefaultSettings().HeroHeading {
		t.Errorf("HeroHeading = %q, want default", got.HeroHeading)
	}
}

func TestHydrateTwiceIsIdempotent(t *testing.T) {
	store := newRecordingStore()
	store.PutRaw(storage.KeySettings, []byte(`{"siteName":"Acme","heroHeading":"Saved"}`))
	s := newTestService(t, store)

	s.Hydrate(context.Background())
	once := s.Settings()
	s.Hydrate(context.Background())

	if s.Settings() != once {
		t.Errorf("second hydration changed settings: %+v", s.Settings())
	}
}

func TestHydrateReplacesProductsWholesale(t *testing.T) {
	store := newRecordingStore()
	saved := content.InitialProducts()
	saved[0].Name = "Renamed Bot"
	saved[0].Features = []string{"only one"}
	if err := store.Save(context.Background(), storage.KeyProducts, saved); err != nil {
		t.Fatal(err)
	}
	s := newTestService(t, store)

	s.Hydrate(context.Background())

	p, _ := s.Product(content.ProductChatbot)
	if p.Name != "Renamed Bot" || len(p.Features) != 1 {
		t.Errorf("product = %+v", p)
	}
}

func TestHydrateRejectsCorruptProducts(t *testing.T) {
	store := newRecordingStore()
	store.PutRaw(storage.KeyProducts, []byte(`[{"id":"toaster","name":"Toaster"}]`))
	s := newTestService(t, store)

	s.Hydrate(context.Background())

	if len(s.Products()) != len(content.ProductTypes) {
		t.Errorf("expected seed catalog to survive, got %d products", len(s.Products()))
	}
	if !s.Hydrated() {
		t.Error("expected hydrated despite corrupt payload")
	}
}

func TestHydrateSwallowsStoreFailures(t *testing.T) {
	store := newRecordingStore()
	store.failGet[storage.KeySettings] = errors.New("disk on fire")
	store.failGet[storage.KeyProducts] = errors.New("disk on fire")
	s := newTestService(t, store)

	s.Hydrate(context.Background())

	select {
	case <-s.Ready():
	default:
		t.Fatal("Ready not closed after failed hydration")
	}
	if s.Settings() != content.DefaultSettings() {
		t.Error("defaults not retained")
	}
}

func TestHydrateWaitsForAllRetrievals(t *testing.T) {
	store := newRecordingStore()
	store.getHold = make(chan struct{})
	s := newTestService(t, store)

	done := make(chan struct{})
	go func() {
		s.Hydrate(context.Background())
		close(done)
	}()

	// Settings and posts load immediately; products are held back.
	time.Sleep(20 * time.Millisecond)
	if s.Hydrated() {
		t.Fatal("hydrated before every retrieval settled")
	}

	close(store.getHold)
	<-done
	if !s.Hydrated() {
		t.Error("expected hydrated after all retrievals settled")
	}
}

func TestHydrationDoesNotPersist(t *testing.T) {
	store := newRecordingStore()
	store.PutRaw(storage.KeySettings, []byte(`{"siteName":"Acme"}`))
	s := newTestService(t, store)

	s.Hydrate(context.Background())
	s.Flush(context.Background())

	if n := store.saveCount(storage.KeySettings); n != 0 {
		t.Errorf("hydration triggered %d saves", n)
	}
}

func TestNoWriteBeforeHydration(t *testing.T) {
	store := newRecordingStore()
	s := newTestService(t, store)

	if _, err := s.SetSetting("siteName", "Early"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	s.Flush(context.Background())

	if n := store.saveCount(storage.KeySettings); n != 0 {
		t.Errorf("saved %d times before hydration", n)
	}
}

func TestChangesPersistAfterHydration(t *testing.T) {
	store := newRecordingStore()
	s := newTestService(t, store)
	s.Hydrate(context.Background())

	for _, name := range []string{"One", "Two", "Three"} {
		if _, err := s.SetSetting("siteName", name); err != nil {
			t.Fatalf("SetSetting: %v", err)
		}
	}
	if _, err := s.SetProductField(content.ProductVoicebot, "monthlyPrice", "175"); err != nil {
		t.Fatalf("SetProductField: %v", err)
	}
	s.Flush(context.Background())

	var saved content.SiteSettings
	if _, err := store.MemoryStore.Get(context.Background(), storage.KeySettings, &saved); err != nil {
		t.Fatal(err)
	}
	if saved.SiteName != "Three" {
		t.Errorf("persisted SiteName = %q, want last write Three", saved.SiteName)
	}

	var products []content.Product
	if _, err := store.MemoryStore.Get(context.Background(), storage.KeyProducts, &products); err != nil {
		t.Fatal(err)
	}
	p, _ := content.FindProduct(products, content.ProductVoicebot)
	if p.MonthlyPrice != 175 {
		t.Errorf("persisted price = %v, want 175", p.MonthlyPrice)
	}
}

func TestRestartRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	first := New(store, zerolog.Nop())
	first.Hydrate(context.Background())
	first.SetSetting("heroHeading", "Persisted")
	if err := first.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := newTestService(t, store)
	second.Hydrate(context.Background())
	if got := second.Settings().HeroHeading; got != "Persisted" {
		t.Errorf("HeroHeading after restart = %q", got)
	}
}

func TestUpdateSettingsFailureLeavesStateUntouched(t *testing.T) {
	s := newTestService(t, newRecordingStore())
	s.Hydrate(context.Background())
	before := s.Settings()

	_, err := s.UpdateSettings(func(st *content.SiteSettings) error {
		st.SiteName = "half applied"
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if s.Settings() != before {
		t.Error("failed update mutated settings")
	}
}

func TestSubscribeSeesOneTransitionPerUpdate(t *testing.T) {
	s := newTestService(t, newRecordingStore())
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.UpdateSettings(func(st *content.SiteSettings) error {
		st.HeroHeading = "A"
		st.PricingHeading = "B"
		return nil
	})

	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	if changes[0].Settings.HeroHeading != "A" || changes[0].Settings.PricingHeading != "B" {
		t.Errorf("change = %+v", changes[0].Settings)
	}
}

func TestUpdateUnknownProduct(t *testing.T) {
	s := newTestService(t, newRecordingStore())
	_, err := s.SetProductField("toaster", "name", "x")
	if !errors.Is(err, content.ErrUnknownProduct) {
		t.Errorf("err = %v, want ErrUnknownProduct", err)
	}
}
