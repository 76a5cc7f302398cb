package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Fetch returns the value cached under key when it is no older than maxAge,
// and otherwise calls fetch, stores its result and returns it.
//
// A maxAge of zero or less always refetches. A failed fetch is returned as is;
// there is no fallback to a stale entry and no retry. A failed write is
// logged through the context logger and the fresh value is still returned.
func Fetch[T any](ctx context.Context, rw ReadWriter, key Key, maxAge time.Duration, fetch func() (T, error)) (T, error) {
	name := key.Filename()

	if maxAge > 0 {
		if entry, ok := rw.Read(name, maxAge); ok {
			var cached T
			if err := json.Unmarshal(entry.Body, &cached); err == nil {
				return cached, nil
			}
		}
	}

	v, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}

	body, err := json.Marshal(v)
	if err != nil {
		return v, fmt.Errorf("encode %s: %w", key, err)
	}
	if err := rw.Write(name, &Entry{Body: body}); err != nil {
		// the fresh value is still usable
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key.String()).Msg("cache write failed")
	}
	return v, nil
}

// Store writes v under key unconditionally.
func Store(w Writer, key Key, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return w.Write(key.Filename(), &Entry{Body: body})
}

// Load decodes the value stored under key into out, regardless of its age.
// It returns ErrCacheNotFound when nothing usable is stored.
func Load(r Reader, key Key, out any) error {
	entry, ok := r.Read(key.Filename(), 0)
	if !ok {
		return ErrCacheNotFound
	}
	if err := json.Unmarshal(entry.Body, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
