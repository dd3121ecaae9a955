package memory

import (
	"time"

	"github.com/oraclehub-commits/brain-hub/internal/entity"

	"github.com/patrickmn/go-cache"
)

// ProfileCache keeps archetype profiles in process memory. The diagnosis
// is taken at most once, so a cached profile can only go from absent to
// present, never stale. Subscription rows are never cached here since
// their expiry is time-dependent.
type ProfileCache struct {
	cache *cache.Cache
}

func NewProfileCache() *ProfileCache {
	// 10 minute TTL, purge sweep every 15 minutes
	c := cache.New(10*time.Minute, 15*time.Minute)
	return &ProfileCache{
		cache: c,
	}
}

func (r *ProfileCache) Save(userId string, profile *entity.ArchetypeProfile) {
	r.cache.Set(userId, profile, cache.DefaultExpiration)
}

func (r *ProfileCache) Get(userId string) (*entity.ArchetypeProfile, bool) {
	if x, found := r.cache.Get(userId); found {
		return x.(*entity.ArchetypeProfile), true
	}
	return nil, false
}

func (r *ProfileCache) Delete(userId string) {
	r.cache.Delete(userId)
}
