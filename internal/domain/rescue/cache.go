package rescue

import (
	"sync"
	"time"
)

// DefaultCacheTTL es el TTL de los scores cacheados (fijo, no configurable).
const DefaultCacheTTL = 5 * time.Minute

type cacheKey struct {
	animalID string
	category Category
}

// ScoreCache es el cache de scores por (animalID, categoría), con expiración
// por TTL. Se inyecta al Service en construcción: cada engine puede tener su
// propio cache aislado (clave para tests).
//
// La expiración es lazy en lectura; el janitor borra físicamente lo vencido.
// Política last-writer-wins: recomputar el mismo score en una carrera produce
// el mismo valor numérico.
type ScoreCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[cacheKey]ScoreResult

	now func() time.Time
}

func NewScoreCache(ttl time.Duration) *ScoreCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ScoreCache{
		ttl:     ttl,
		entries: make(map[cacheKey]ScoreResult),
		now:     time.Now,
	}
}

// Get devuelve el score vivo para (animalID, category).
// Una entrada con edad >= TTL se trata como ausente (no se borra acá).
func (c *ScoreCache) Get(animalID string, category Category) (ScoreResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res, ok := c.entries[cacheKey{animalID: animalID, category: category}]
	if !ok {
		return ScoreResult{}, false
	}
	if c.now().Sub(res.ComputedAt) >= c.ttl {
		return ScoreResult{}, false
	}
	return res, true
}

func (c *ScoreCache) Put(animalID string, category Category, res ScoreResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{animalID: animalID, category: category}] = res
}

// Sweep borra toda entrada vencida y devuelve cuántas sacó.
func (c *ScoreCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, res := range c.entries {
		if now.Sub(res.ComputedAt) >= c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len es el total de entradas, vencidas incluidas (para tests y logging).
func (c *ScoreCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// StartJanitor arranca el sweep periódico (mismo intervalo que el TTL) y
// devuelve la función de parada. Pararlo es responsabilidad del proceso dueño.
func (c *ScoreCache) StartJanitor() (stop func()) {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(c.ttl)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Sweep()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
