package reactive

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"prism/internal/hir"
)

// Current schema version - increment when cachePayload format changes.
const cacheSchemaVersion uint16 = 1

// Digest identifies one function's IR content.
type Digest [sha256.Size]byte

// HashFunc digests a function from its canonical dump, so any structural
// change invalidates cached results.
func HashFunc(fn *hir.Func) Digest {
	var sb strings.Builder
	_ = hir.Dump(&sb, fn, nil)
	return sha256.Sum256([]byte(sb.String()))
}

type cachePayload struct {
	Schema   uint16
	Function string
	Reactive []uint32
}

// DiskCache persists reactivity side tables keyed by function digest, so the
// surrounding pipeline can skip re-analysis of unchanged functions.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "reactivity")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a result to the disk cache, atomically replacing
// any previous entry.
func (c *DiskCache) Put(key Digest, fnName string, res *Result) error {
	if c == nil || res == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := res.Identifiers()
	payload := cachePayload{
		Schema:   cacheSchemaVersion,
		Function: fnName,
		Reactive: make([]uint32, len(ids)),
	}
	for i, id := range ids {
		payload.Reactive[i] = uint32(id)
	}

	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a cached result. ok is false on a miss or a schema mismatch.
func (c *DiskCache) Get(key Digest) (res *Result, ok bool, err error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}

	res = newResult()
	for _, raw := range payload.Reactive {
		res.markIdentifier(hir.IdentifierID(raw))
	}
	return res, true, nil
}
