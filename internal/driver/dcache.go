package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"declfix/internal/diag"
	"declfix/internal/source"
)

// increment when DiskPayload changes shape
const diskCacheSchemaVersion uint16 = 1

// DiskCache keeps per-file analysis results keyed by content and settings.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what one cache entry stores. Fixes are materialized before
// caching; spans carry no file id.
type DiskPayload struct {
	Schema      uint16
	Path        string
	Diagnostics []diag.Diagnostic
}

// OpenDiskCache opens (creating if needed) $XDG_CACHE_HOME/<app>, falling
// back to ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// двухсимвольные подкаталоги, чтобы не держать тысячи файлов в одном
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put writes payload atomically (temp file + rename).
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
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
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the entry for key. A missing entry or one written by another
// schema version is a miss, not an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("cache entry %x: %w", key[:4], err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}

// Dir is the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// toPayload resolves lazy fixes so the diagnostics can be serialized. A fix
// that fails to build is dropped.
func toPayload(fs *source.FileSet, path string, items []diag.Diagnostic) *DiskPayload {
	ctx := diag.FixBuildContext{FileSet: fs}
	out := make([]diag.Diagnostic, 0, len(items))
	for _, d := range items {
		fixes := make([]*diag.Fix, 0, len(d.Fixes))
		for _, f := range d.Fixes {
			resolved, err := f.Resolve(ctx)
			if err != nil {
				continue
			}
			fixes = append(fixes, &resolved)
		}
		d.Fixes = fixes
		out = append(out, d)
	}
	return &DiskPayload{Path: path, Diagnostics: out}
}

// fromPayload points every span of the cached diagnostics at file.
func fromPayload(p *DiskPayload, file source.FileID) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(p.Diagnostics))
	for _, d := range p.Diagnostics {
		d.Primary.File = file
		notes := make([]diag.Note, len(d.Notes))
		for i, n := range d.Notes {
			n.Span.File = file
			notes[i] = n
		}
		d.Notes = notes
		for _, f := range d.Fixes {
			for i := range f.Edits {
				f.Edits[i].Span.File = file
			}
		}
		out = append(out, d)
	}
	return out
}
