package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

// binarySuffix marks a key whose value is base64 of bytes that are not valid
// UTF-8. YAML text cannot carry such bytes unchanged.
const binarySuffix = "!base64"

// ErrStoreFormat is returned when values cannot be written in a form that
// reads back unchanged.
var ErrStoreFormat = errors.New("value does not survive encoding")

// File is a Store persisted as a flat YAML mapping. The whole document is
// rewritten atomically on every Set. The file is read back without a size
// limit: anything Set accepted must open again.
type File struct {
	path string

	mu     sync.Mutex
	values map[string]string
	closed bool
}

// OpenFile loads path if it exists. A missing file is an empty store; the
// file and its directory are created on the first Set.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from config or the user config dir
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreOpen, err)
	}

	if len(data) == 0 {
		return f, nil
	}
	var raw map[string]string
	if err := yamlutil.UnmarshalUnbounded(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreOpen, path, err)
	}
	values, err := decodeValues(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreOpen, path, err)
	}
	f.values = values
	return f, nil
}

// Path returns the backing file.
func (f *File) Path() string {
	return f.path
}

// Get implements Store.
func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if err := checkKey(key); err != nil {
		return "", false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}
	v, ok := f.values[key]
	return v, ok, nil
}

// Set implements Store. On write failure the in-memory value is rolled back.
func (f *File) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}
	if strings.HasSuffix(key, binarySuffix) {
		return fmt.Errorf("%w: %s: reserved suffix %q", ErrStoreWrite, key, binarySuffix)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	prev, had := f.values[key]
	f.values[key] = value

	if err := f.flush(); err != nil {
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return fmt.Errorf("%w: %s: %v", ErrStoreWrite, key, err)
	}
	return nil
}

// Close implements Store.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// flush must be called with mu held.
func (f *File) flush() error {
	data, err := encode(f.values)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(f.path, data, fileutil.PrivatePermissions)
}

// encode prefers the readable block form and falls back to quoted strings
// when a value would not decode back byte for byte. A document that still
// does not round-trip is never written.
func encode(values map[string]string) ([]byte, error) {
	raw := encodeValues(values)
	data, err := yamlutil.Marshal(raw)
	if err == nil && roundTrips(data, raw) {
		return data, nil
	}
	data, err = yamlutil.MarshalQuoted(raw)
	if err != nil {
		return nil, err
	}
	if !roundTrips(data, raw) {
		return nil, ErrStoreFormat
	}
	return data, nil
}

// encodeValues moves values that are not valid UTF-8 to base64 under a
// suffixed key.
func encodeValues(values map[string]string) map[string]string {
	raw := make(map[string]string, len(values))
	for k, v := range values {
		if utf8.ValidString(v) {
			raw[k] = v
			continue
		}
		raw[k+binarySuffix] = base64.StdEncoding.EncodeToString([]byte(v))
	}
	return raw
}

func decodeValues(raw map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		name, ok := strings.CutSuffix(k, binarySuffix)
		if !ok {
			values[k] = v
			continue
		}
		b, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		values[name] = string(b)
	}
	return values, nil
}

func roundTrips(data []byte, want map[string]string) bool {
	got := make(map[string]string, len(want))
	if len(want) > 0 {
		if err := yamlutil.UnmarshalUnbounded(data, &got); err != nil {
			return false
		}
	}
	return maps.Equal(got, want)
}

var _ Store = (*File)(nil)
