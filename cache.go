package img2ascii

import "sync"

// TileCache memoizes tile scores by tile content. Entries are never
// evicted, so memory grows with the number of distinct tiles seen; a
// cache lives as long as the Converter that owns it.
//
// A TileCache is safe for concurrent use. The scorer runs under the
// cache lock, so each distinct tile is scored at most once.
type TileCache struct {
	mu      sync.Mutex
	entries map[TileKey]float64
	hits    int
	misses  int
}

// NewTileCache returns an empty cache.
func NewTileCache() *TileCache {
	return &TileCache{entries: make(map[TileKey]float64)}
}

// GetOrCompute returns the cached score for t, computing it with s on a
// miss.
func (c *TileCache) GetOrCompute(t Tile, s TileScorer) float64 {
	key := t.Key()

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.entries[key]; ok {
		c.hits++
		return v
	}
	c.misses++
	v := s.Score(t)
	c.entries[key] = v
	return v
}

// Len returns the number of distinct tiles cached.
func (c *TileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache hit/miss statistics.
func (c *TileCache) Stats() (hits, misses int, hitRate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	if total == 0 {
		return 0, 0, 0
	}
	return c.hits, c.misses, float64(c.hits) / float64(total)
}
