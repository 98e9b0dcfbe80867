// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/utils"
)

// CacheFileName is the name of the cache file inside the cache directory.
const CacheFileName = "cache"

// fileModificationCache is the [ModificationCache] persisted as a JSON
// object mapping remote uids to timestamps in [utils.TimestampLayout].
//
// The file is read once and written back on every Set, dropping the
// entries older than the retention window. No lock is taken across
// processes: two writers may drop each other's entries.
type fileModificationCache struct {
	path      string
	retention time.Duration
	now       func() time.Time

	mu      sync.RWMutex
	entries map[string]string
}

// NewFileModificationCache loads the cache kept in dir. An empty dir gives a
// cache that lives in memory only.
func NewFileModificationCache(dir string, retention time.Duration) (ModificationCache, error) {
	c := &fileModificationCache{
		retention: retention,
		now:       time.Now,
		entries:   make(map[string]string),
	}
	if dir != "" {
		c.path = filepath.Join(dir, CacheFileName)
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *fileModificationCache) load() error {
	if c.path == "" {
		return nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var raw map[string]string
	if err = json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode cache file: %w", err)
	}

	for uid, value := range raw {
		t, parseErr := utils.ParseTime(value)
		if parseErr != nil {
			continue
		}
		c.entries[uid] = utils.FormatTimestamp(t)
	}
	return nil
}

// IsUpToDate implements [ModificationCache]. Resources without a
// modification time are never up to date.
func (c *fileModificationCache) IsUpToDate(uid string, modified time.Time) bool {
	if modified.IsZero() {
		return false
	}
	cached, ok := c.Get(uid)
	if !ok {
		return false
	}
	return utils.FormatTimestamp(modified) <= cached
}

// Get implements [ModificationCache].
func (c *fileModificationCache) Get(uid string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.entries[uid]
	return value, ok
}

// Set implements [ModificationCache]. A zero modified is ignored.
func (c *fileModificationCache) Set(ctx context.Context, uid string, modified time.Time) error {
	if modified.IsZero() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[uid] = utils.FormatTimestamp(modified)
	c.prune()

	if err := c.persist(); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "fileModificationCache.Set").
			Str("path", c.path).
			Msg("failed to write cache file")
		return err
	}
	return nil
}

// prune drops the entries at or before now minus the retention window.
func (c *fileModificationCache) prune() {
	if c.retention <= 0 {
		return
	}
	threshold := utils.FormatTimestamp(c.now().Add(-c.retention))
	for uid, value := range c.entries {
		if value <= threshold {
			delete(c.entries, uid)
		}
	}
}

// persist replaces the cache file through a temporary file in the same
// directory.
func (c *fileModificationCache) persist() error {
	if c.path == "" {
		return nil
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	payload, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	tmp, err := os.CreateTemp(dir, CacheFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}
	if err = os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}
