package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// CachedABI is an explorer-fetched ABI stored on disk.
type CachedABI struct {
	ChainID   int64     `json:"chainId"`
	Address   string    `json:"address"`
	ABI       ABI       `json:"abi"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Cache stores fetched ABIs in a JSON file so verified contracts are only
// fetched from the explorer once.
type Cache struct {
	path string

	mu      sync.RWMutex
	entries map[string]*CachedABI // key: "chainId:address"
}

// NewCache creates a Cache backed by a JSON file. Call Load to read it.
func NewCache(path string) *Cache {
	return &Cache{
		path:    path,
		entries: make(map[string]*CachedABI),
	}
}

// Load reads cached ABIs from disk. A missing file is an empty cache.
func (c *Cache) Load() error {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var entries []CachedABI
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("reading ABI cache %s: %w", c.path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range entries {
		e := &entries[i]
		c.entries[cacheKey(e.ChainID, e.Address)] = e
	}
	return nil
}

// Save writes all cached ABIs to disk.
func (c *Cache) Save() error {
	entries := c.All()
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o600)
}

// Put adds or replaces the ABI for address on chainID.
func (c *Cache) Put(chainID int64, address string, abi ABI) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(chainID, address)] = &CachedABI{
		ChainID:   chainID,
		Address:   address,
		ABI:       abi,
		FetchedAt: time.Now().UTC(),
	}
}

// Get returns the cached ABI for address on chainID. Addresses compare
// case-insensitively.
func (c *Cache) Get(chainID int64, address string) (ABI, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[cacheKey(chainID, address)]
	if !ok {
		return nil, false
	}
	return e.ABI, true
}

// All returns all cached entries ordered by chain id and address.
func (c *Cache) All() []CachedABI {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]CachedABI, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ChainID != out[j].ChainID {
			return out[i].ChainID < out[j].ChainID
		}
		return strings.ToLower(out[i].Address) < strings.ToLower(out[j].Address)
	})
	return out
}

// Remove deletes a cached ABI and reports whether it was present.
func (c *Cache) Remove(chainID int64, address string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := cacheKey(chainID, address)
	_, ok := c.entries[k]
	delete(c.entries, k)
	return ok
}

func cacheKey(chainID int64, address string) string {
	return strconv.FormatInt(chainID, 10) + ":" + strings.ToLower(address)
}
