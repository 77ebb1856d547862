package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// EmbedCacheItem is one persisted embedding vector.
type EmbedCacheItem struct {
	Hash      string    `json:"hash"`
	Vector    []float32 `json:"vector"`
	CreatedAt time.Time `json:"created_at"`
}

// EmbedCache persists embedding vectors between runs in a JSON file, so
// repeated runs over overlapping news do not re-pay the embedding calls.
// Entries expire after the configured TTL.
type EmbedCache struct {
	filePath string
	ttlHours int
	items    map[string]EmbedCacheItem
	mu       sync.RWMutex
}

func NewEmbedCache(filePath string, ttlHours int) *EmbedCache {
	return &EmbedCache{
		filePath: filePath,
		ttlHours: ttlHours,
		items:    make(map[string]EmbedCacheItem),
	}
}

// Load reads the cache file if it exists, dropping expired entries.
func (c *EmbedCache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.filePath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(c.filePath)
	if err != nil {
		return fmt.Errorf("failed to read embedding cache: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var items []EmbedCacheItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to unmarshal embedding cache: %w", err)
	}

	cutoff := time.Now().Add(-time.Duration(c.ttlHours) * time.Hour)
	for _, item := range items {
		if item.CreatedAt.After(cutoff) {
			c.items[item.Hash] = item
		}
	}
	return nil
}

// Save writes the current cache contents back to disk.
func (c *EmbedCache) Save() error {
	c.mu.RLock()
	items := make([]EmbedCacheItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	c.mu.RUnlock()

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding cache: %w", err)
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write embedding cache: %w", err)
	}
	return nil
}

// Key hashes article text into a stable cache key.
func Key(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])[:16]
}

// Get returns the cached vector for a key, if present and fresh.
func (c *EmbedCache) Get(key string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[key]
	if !ok {
		return nil, false
	}
	cutoff := time.Now().Add(-time.Duration(c.ttlHours) * time.Hour)
	if !item.CreatedAt.After(cutoff) {
		return nil, false
	}
	return item.Vector, true
}

// Put stores a vector under a key.
func (c *EmbedCache) Put(key string, vector []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = EmbedCacheItem{
		Hash:      key,
		Vector:    vector,
		CreatedAt: time.Now(),
	}
}

// Len reports the number of cached vectors.
func (c *EmbedCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
