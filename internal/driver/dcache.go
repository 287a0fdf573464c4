package driver

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// diskCacheSchemaVersion bumps whenever Summary changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache keeps parse summaries on disk, keyed by file content and the
// lexer options that can change the outcome. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache opens $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate cache dir: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache uses dir as the cache root, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

// CacheKey hashes content together with everything in opts that affects
// tokens or diagnostics.
func CacheKey(content []byte, opts Options) uint64 {
	h := xxhash.New()
	var hdr [2 + 1 + 4 + 8]byte
	binary.LittleEndian.PutUint16(hdr[0:], diskCacheSchemaVersion)
	if opts.NestedComments {
		hdr[2] = 1
	}
	binary.LittleEndian.PutUint32(hdr[3:], opts.MaxTokenLen)
	binary.LittleEndian.PutUint64(hdr[7:], uint64(len(content)))
	_, _ = h.Write(hdr[:])
	_, _ = h.Write(content)
	return h.Sum64()
}

func (c *DiskCache) pathFor(key uint64) string {
	name := fmt.Sprintf("%016x", key)
	// два уровня, чтобы каталог не разрастался
	return filepath.Join(c.dir, "parse", name[len(name)-2:], name+".mp")
}

// Put writes s atomically (temp file + rename).
func (c *DiskCache) Put(key uint64, s *Summary) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if err = msgpack.NewEncoder(f).Encode(s); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode summary: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the summary for key. A missing entry or one written by another
// schema version is a miss, not an error.
func (c *DiskCache) Get(key uint64) (*Summary, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var s Summary
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, false, fmt.Errorf("decode summary: %w", err)
	}
	if s.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return &s, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// сначала rename: параллельный Get увидит пустой кэш, а не полуудалённый
	old := filepath.Join(c.dir, "parse.old-"+time.Now().Format("20060102150405.000000000"))
	if err := os.Rename(filepath.Join(c.dir, "parse"), old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
