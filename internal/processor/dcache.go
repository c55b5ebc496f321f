package processor

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"
)

// bump when DiskPayload changes shape
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores processed outputs on disk, one msgpack file per key.
// Safe for concurrent use.
type DiskCache struct {
	mu   sync.RWMutex
	fsys afero.Fs
	dir  string
}

// DiskPayload is one memoised Process outcome.
type DiskPayload struct {
	Schema    uint16
	Processor string
	Output    []byte
	Warnings  int
	// Features lists the names of constructs newer than --language_out.
	Features []string
}

// CacheKey identifies a script by content and effective flags.
type CacheKey [sha256.Size]byte

func cacheKeyFor(name string, src []byte, args []string) CacheKey {
	h := sha256.New()
	_, _ = h.Write([]byte(name))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(src)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strings.Join(args, "\x00")))
	var k CacheKey
	copy(k[:], h.Sum(nil))
	return k
}

// DefaultCacheDir is $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func DefaultCacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenDiskCache creates dir on fsys if needed.
func OpenDiskCache(fsys afero.Fs, dir string) (*DiskCache, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open disk cache: %w", err)
	}
	return &DiskCache{fsys: fsys, dir: dir}, nil
}

func (c *DiskCache) pathFor(key CacheKey) string {
	return filepath.Join(c.dir, "out", hex.EncodeToString(key[:])+".mp")
}

// Put writes payload atomically through a temp file and rename.
func (c *DiskCache) Put(key CacheKey, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := c.fsys.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := afero.TempFile(c.fsys, filepath.Dir(p), "tmp-")
	if err != nil {
		return err
	}
	tmp := f.Name()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = c.fsys.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = c.fsys.Remove(tmp)
		return err
	}
	return c.fsys.Rename(tmp, p)
}

// Get reads the payload for key. A missing entry or an entry written with
// another schema is a miss, not an error.
func (c *DiskCache) Get(key CacheKey, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := c.fsys.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fsys.RemoveAll(filepath.Join(c.dir, "out"))
}
