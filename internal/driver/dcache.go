package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cinder/internal/project"
	"cinder/internal/symtab"
)

// DiskCache persists per-file symbol snapshots keyed by content digest, so
// an unchanged source file skips declaration collection on the next run.
// A nil cache is valid and disables persistence. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes the cache at the standard XDG location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes the cache at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	// "syms" subdirectory keeps the cache root inspectable.
	return filepath.Join(c.dir, "syms", hex.EncodeToString(key[:])+".mp")
}

// Lookup reads the snapshot cached for a content digest. A decode failure
// counts as a miss; a stale or truncated entry must never poison a run.
func (c *DiskCache) Lookup(key project.Digest) (*symtab.Snapshot, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer f.Close()
	snap, err := symtab.DecodeSnapshot(f)
	if err != nil {
		return nil, false
	}
	return snap, true
}

// Store writes a snapshot under a content digest with an atomic rename.
func (c *DiskCache) Store(key project.Digest, snap *symtab.Snapshot) {
	if c == nil || snap == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return
	}
	if err := snap.Encode(f); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return
	}
	if err := os.Rename(f.Name(), p); err != nil {
		_ = os.Remove(f.Name())
	}
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
