package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/maypok86/otter/v2"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Cache is the file-backed key-value store. Values live in an otter cache and
// every write is flushed to a single JSON document before it returns.
type Cache struct {
	outer *otter.Cache[string, json.RawMessage]

	mu       sync.Mutex
	filePath string
}

func NewCache(filePath string) (*Cache, error) {
	c := &Cache{
		outer: otter.Must(&otter.Options[string, json.RawMessage]{
			InitialCapacity: 16,
		}),
		filePath: filePath,
	}

	if c.filePath != "" {
		if err := c.loadFromDisk(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", c.filePath, err)
		}
	}

	return c, nil
}

func (c *Cache) Get(key string, v any) (bool, error) {
	raw, ok := c.outer.GetIfPresent(key)
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

func (c *Cache) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.outer.Set(key, raw)
	return c.flushLocked()
}

func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.outer.Invalidate(key)
	return c.flushLocked()
}

func (c *Cache) FlushToDisk() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.flushLocked()
}

func (c *Cache) flushLocked() error {
	if c.filePath == "" {
		return nil
	}

	cacheData := make(map[string]json.RawMessage)
	for k, v := range c.outer.All() {
		cacheData[k] = v
	}

	data, err := json.MarshalIndent(cacheData, "", "  ")
	if err != nil {
		return err
	}

	return writeAtomic(c.filePath, data, 0600)
}

func (c *Cache) loadFromDisk() error {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		return err
	}

	var items map[string]json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	for k, v := range items {
		c.outer.Set(k, v)
	}

	return nil
}

func (c *Cache) Close() error {
	return c.FlushToDisk()
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", filepath.Base(path), time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
