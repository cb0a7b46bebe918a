// Package state owns the live site settings, product catalog and blog posts.
// It hydrates them from storage at startup and persists every later change.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/redwireai/storefront/internal/content"
	"github.com/redwireai/storefront/internal/storage"
)

// Entity names one independently persisted piece of state.
type Entity string

const (
	EntitySettings Entity = "settings"
	EntityProducts Entity = "products"
	EntityPosts    Entity = "posts"
)

// Change is delivered to observers after every state transition.
type Change struct {
	Entity   Entity
	Settings content.SiteSettings
	Products []content.Product
	Posts    []content.BlogPost
}

// Service is the single owner of mutable site state. Dependents receive a
// *Service rather than reaching for globals.
type Service struct {
	store  storage.Store
	logger zerolog.Logger

	mu       sync.RWMutex
	settings content.SiteSettings
	products []content.Product
	posts    []content.BlogPost
	hydrated bool

	ready     chan struct{}
	readyOnce sync.Once

	observers []func(Change)

	savers    map[Entity]*saver
	closeOnce sync.Once
}

// New creates a Service seeded with the compiled-in defaults.
func New(store storage.Store, logger zerolog.Logger) *Service {
	logger = logger.With().Str("component", "state").Logger()
	return &Service{
		store:    store,
		logger:   logger,
		settings: content.DefaultSettings(),
		products: content.InitialProducts(),
		posts:    content.InitialPosts(),
		ready:    make(chan struct{}),
		savers: map[Entity]*saver{
			EntitySettings: newSaver(storage.KeySettings, store, logger),
			EntityProducts: newSaver(storage.KeyProducts, store, logger),
			EntityPosts:    newSaver(storage.KeyPosts, store, logger),
		},
	}
}

// Hydrate loads persisted state and merges it over the in-memory values.
// All retrievals run concurrently and all of them settle before the service
// is marked hydrated. Retrieval failures are logged and the defaults kept;
// Hydrate always ends in the hydrated state.
func (s *Service) Hydrate(ctx context.Context) {
	var (
		g        errgroup.Group
		partial  content.PartialSettings
		products []content.Product
		posts    []content.BlogPost
		gotSet   bool
		gotProd  bool
		gotPosts bool
	)

	g.Go(func() error {
		found, err := s.store.Get(ctx, storage.KeySettings, &partial)
		if err != nil {
			s.logger.Error().Err(err).Msg("loading persisted settings failed, keeping defaults")
			return nil
		}
		gotSet = found
		return nil
	})
	g.Go(func() error {
		found, err := s.store.Get(ctx, storage.KeyProducts, &products)
		if err != nil {
			s.logger.Error().Err(err).Msg("loading persisted products failed, keeping catalog")
			return nil
		}
		if found {
			if err := content.ValidateProducts(products); err != nil {
				s.logger.Error().Err(err).Msg("persisted products are corrupt, keeping catalog")
				return nil
			}
		}
		gotProd = found
		return nil
	})
	g.Go(func() error {
		found, err := s.store.Get(ctx, storage.KeyPosts, &posts)
		if err != nil {
			s.logger.Error().Err(err).Msg("loading persisted blog posts failed, keeping seed posts")
			return nil
		}
		gotPosts = found
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	var applied []string
	if gotSet {
		applied = content.MergeSettings(&s.settings, partial)
	}
	if gotProd {
		s.products = products
	}
	if gotPosts {
		s.posts = posts
	}
	s.hydrated = true
	s.mu.Unlock()

	s.readyOnce.Do(func() {
		close(s.ready)
		s.logger.Info().
			Int("settings_fields", len(applied)).
			Bool("products_restored", gotProd).
			Bool("posts_restored", gotPosts).
			Msg("state hydrated")
	})
}

// Ready is closed once the first hydration has completed.
func (s *Service) Ready() <-chan struct{} { return s.ready }

// Hydrated reports whether the first hydration has completed.
func (s *Service) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() content.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Products returns a copy of the current catalog.
func (s *Service) Products() []content.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return content.CloneProducts(s.products)
}

// Product returns one catalog entry.
func (s *Service) Product(id content.ProductType) (content.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := content.FindProduct(s.products, id)
	if ok {
		p.Features = append([]string(nil), p.Features...)
	}
	return p, ok
}

// Posts returns a copy of every blog post.
func (s *Service) Posts() []content.BlogPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return content.ClonePosts(s.posts)
}

// Subscribe registers fn to receive every subsequent Change. Observers run
// synchronously inside the transition and must not call back into the Service.
func (s *Service) Subscribe(fn func(Change)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// UpdateSettings applies fn to a copy of the settings and, if fn succeeds,
// installs the result as a single transition.
func (s *Service) UpdateSettings(fn func(*content.SiteSettings) error) (content.SiteSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings
	if err := fn(&next); err != nil {
		return s.settings, err
	}
	s.settings = next
	s.commit(Change{Entity: EntitySettings, Settings: next}, next)
	return next, nil
}

// SetSetting assigns one settings field and returns its previous value.
func (s *Service) SetSetting(field, value string) (string, error) {
	var prev string
	_, err := s.UpdateSettings(func(st *content.SiteSettings) error {
		var err error
		if prev, err = st.Get(field); err != nil {
			return err
		}
		return st.Set(field, value)
	})
	return prev, err
}

// UpdateProduct applies fn to a copy of the product with the given id.
func (s *Service) UpdateProduct(id content.ProductType, fn func(*content.Product) error) (content.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := content.CloneProducts(s.products)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		if err := fn(&next[i]); err != nil {
			return content.Product{}, err
		}
		next[i].ID = id
		s.products = next
		s.commit(Change{Entity: EntityProducts, Products: content.CloneProducts(next)}, content.CloneProducts(next))
		return content.CloneProducts(next[i : i+1])[0], nil
	}
	return content.Product{}, fmt.Errorf("%w: %q", content.ErrUnknownProduct, id)
}

// SetProductField assigns one product field from its string form.
func (s *Service) SetProductField(id content.ProductType, field, value string) (content.Product, error) {
	return s.UpdateProduct(id, func(p *content.Product) error {
		return p.Set(field, value)
	})
}

// UpdatePosts replaces the post list with the result of fn.
func (s *Service) UpdatePosts(fn func([]content.BlogPost) ([]content.BlogPost, error)) ([]content.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(content.ClonePosts(s.posts))
	if err != nil {
		return nil, err
	}
	s.posts = next
	s.commit(Change{Entity: EntityPosts, Posts: content.ClonePosts(next)}, content.ClonePosts(next))
	return content.ClonePosts(next), nil
}

// commit notifies observers and, once hydrated, queues the snapshot for
// persistence. Callers hold s.mu, which keeps queue order equal to
// transition order.
func (s *Service) commit(c Change, snapshot any) {
	for _, fn := range s.observers {
		fn(c)
	}
	if !s.hydrated {
		return
	}
	s.savers[c.Entity].queue(snapshot)
}

// Flush synchronously writes every pending snapshot.
func (s *Service) Flush(ctx context.Context) {
	for _, sv := range s.savers {
		sv.flush(ctx)
	}
}

// Close stops the background writers after flushing pending snapshots.
func (s *Service) Close(ctx context.Context) error {
	var errs []error
	s.closeOnce.Do(func() {
		for _, sv := range s.savers {
			if err := sv.close(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}
