package openapi

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/GAKiknadze/swagger-to-docs/config"
	"github.com/GAKiknadze/swagger-to-docs/internal"
)

// Store manages the loaded specifications named in config. Local sources are
// read from disk, remote ones fetched through the disk cache.
type Store struct {
	cfg       *config.Config
	cache     *Cache
	documents map[string]*Document
	indices   map[string]*Index
	mu        sync.RWMutex
}

// NewStore creates a spec store.
func NewStore(cfg *config.Config) *Store {
	home, _ := os.UserHomeDir()
	cacheDir := filepath.Join(home, ".cache", "swagger-to-docs")

	return &Store{
		cfg:       cfg,
		cache:     NewCache(cacheDir, time.Duration(cfg.CacheTTLHours)*time.Hour),
		documents: make(map[string]*Document),
		indices:   make(map[string]*Index),
	}
}

// LoadAll loads every configured spec. Failures are logged per spec and do
// not stop the rest.
func (s *Store) LoadAll(ctx context.Context) {
	for name, src := range s.cfg.Specs {
		if err := s.load(ctx, name, src); err != nil {
			internal.Errorf("loading spec %s: %v", name, err)
			continue
		}
		if idx := s.Index(name); idx != nil {
			internal.Logf("loaded %s: %d endpoints", name, idx.Count())
		}
	}
}

func (s *Store) load(ctx context.Context, name string, src config.SpecSource) error {
	var (
		doc *Document
		err error
	)
	switch {
	case src.URL != "":
		var data []byte
		data, err = Fetch(ctx, src.URL, s.cache)
		if err != nil {
			return err
		}
		doc, err = Parse(ctx, name, data)
	case src.Path != "":
		doc, err = Load(ctx, src.Path)
	default:
		return fmt.Errorf("spec %q has neither path nor url", name)
	}
	if err != nil {
		return err
	}

	idx := BuildIndex(name, doc)

	s.mu.Lock()
	s.documents[name] = doc
	s.indices[name] = idx
	s.mu.Unlock()

	return nil
}

// Document returns the loaded document for a spec name.
func (s *Store) Document(name string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documents[name]
}

// Index returns the index for a spec name.
func (s *Store) Index(name string) *Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indices[name]
}

// Names returns loaded spec names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.indices))
	for name := range s.indices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Search searches across all or a specific spec.
func (s *Store) Search(query, specName string) []EndpointSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []EndpointSummary
	for name, idx := range s.indices {
		if specName != "" && name != specName {
			continue
		}
		results = append(results, idx.Search(query)...)
	}
	return results
}

// Refresh re-loads a specific spec, bypassing the cache for remote sources.
func (s *Store) Refresh(ctx context.Context, name string) error {
	src, ok := s.cfg.Specs[name]
	if !ok {
		return fmt.Errorf("spec %q not configured", name)
	}
	if src.URL != "" {
		s.cache.Invalidate(src.URL)
	}
	return s.load(ctx, name, src)
}

// RefreshAll re-loads every configured spec and returns per-spec errors.
func (s *Store) RefreshAll(ctx context.Context) map[string]error {
	errors := make(map[string]error)
	for name, src := range s.cfg.Specs {
		if src.URL != "" {
			s.cache.Invalidate(src.URL)
		}
		if err := s.load(ctx, name, src); err != nil {
			errors[name] = err
		}
	}
	if len(errors) == 0 {
		return nil
	}
	return errors
}
