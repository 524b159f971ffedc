package memory

import (
	"time"

	"doc-templates-be/pkg/orchestrator"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps one orchestrator store per browser session.
// Sessions expire after ttl without access.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl, cleanupInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *SessionRepository) Save(id uuid.UUID, store *orchestrator.Store) {
	r.cache.Set(id.String(), store, cache.DefaultExpiration)
}

// Get returns the store and extends its expiry.
func (r *SessionRepository) Get(id uuid.UUID) (*orchestrator.Store, bool) {
	x, found := r.cache.Get(id.String())
	if !found {
		return nil, false
	}
	store := x.(*orchestrator.Store)
	r.cache.Set(id.String(), store, cache.DefaultExpiration)
	return store, true
}

func (r *SessionRepository) Delete(id uuid.UUID) {
	r.cache.Delete(id.String())
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
