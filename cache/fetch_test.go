package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type result struct {
	Items []string `json:"items"`
}

func newTestCache(t *testing.T) *FileCache {
	t.Helper()
	fc, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	return fc
}

func TestFetchFreshEntrySkipsFetch(t *testing.T) {
	fc := newTestCache(t)
	key := NewKey(SourceFinance, "삼성", false)

	require.NoError(t, Store(fc, key, result{Items: []string{"cached"}}))

	calls := 0
	got, err := Fetch(context.Background(), fc, key, time.Minute, func() (result, error) {
		calls++
		return result{Items: []string{"fresh"}}, nil
	})
	require.NoError(t, err)
	require.Equal(t, 0, calls, "fresh entry must not trigger a fetch")
	require.Equal(t, []string{"cached"}, got.Items)
}

func TestFetchStaleEntryRefetchesOnce(t *testing.T) {
	fc := newTestCache(t)
	key := NewKey(SourceMap, "서울", true)

	written := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	fc.now = func() time.Time { return written }
	require.NoError(t, Store(fc, key, result{Items: []string{"old"}}))

	// two minutes later with a one minute budget
	fc.now = func() time.Time { return written.Add(2 * time.Minute) }

	calls := 0
	got, err := Fetch(context.Background(), fc, key, time.Minute, func() (result, error) {
		calls++
		return result{Items: []string{"new"}}, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, []string{"new"}, got.Items)

	entry, ok := fc.Read(key.Filename(), time.Minute)
	require.True(t, ok, "entry should have been overwritten with a fresh timestamp")
	require.Equal(t, written.Add(2*time.Minute), entry.FetchedAt)
	require.JSONEq(t, `{"items":["new"]}`, string(entry.Body))
}

func TestFetchAgeEqualToMaxAgeIsFresh(t *testing.T) {
	fc := newTestCache(t)
	key := NewKey(SourcePlace, "카페", false)

	written := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	fc.now = func() time.Time { return written }
	require.NoError(t, Store(fc, key, result{Items: []string{"cached"}}))
	fc.now = func() time.Time { return written.Add(30 * time.Second) }

	got, err := Fetch(context.Background(), fc, key, 30*time.Second, func() (result, error) {
		t.Fatal("fetch should not be called")
		return result{}, nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"cached"}, got.Items)
}

func TestFetchZeroMaxAgeAlwaysRefetches(t *testing.T) {
	fc := newTestCache(t)
	key := NewKey(SourceShopping, "노트북", false)
	require.NoError(t, Store(fc, key, result{Items: []string{"cached"}}))

	calls := 0
	for i := 0; i < 2; i++ {
		_, err := Fetch(context.Background(), fc, key, 0, func() (result, error) {
			calls++
			return result{Items: []string{"fresh"}}, nil
		})
		require.NoError(t, err)
	}
	require.Equal(t, 2, calls)
}

func TestFetchErrorIsPropagatedAndNotCached(t *testing.T) {
	fc := newTestCache(t)
	key := NewKey(SourceSearch, "한글", false)
	boom := errors.New("upstream down")

	_, err := Fetch(context.Background(), fc, key, time.Minute, func() (result, error) {
		return result{}, boom
	})
	require.ErrorIs(t, err, boom)

	_, ok := fc.Read(key.Filename(), 0)
	require.False(t, ok, "failed fetch must not leave an entry behind")
}

func TestFetchStaleEntryWithFailingFetchDoesNotFallBack(t *testing.T) {
	fc := newTestCache(t)
	key := NewKey(SourceFinance, "카카오", false)

	written := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	fc.now = func() time.Time { return written }
	require.NoError(t, Store(fc, key, result{Items: []string{"stale"}}))
	fc.now = func() time.Time { return written.Add(time.Hour) }

	_, err := Fetch(context.Background(), fc, key, time.Minute, func() (result, error) {
		return result{}, errors.New("timeout")
	})
	require.Error(t, err)
}

func TestLoadMissingKey(t *testing.T) {
	fc := newTestCache(t)

	var v map[string]bool
	err := Load(fc, Named("use_ip"), &v)
	require.ErrorIs(t, err, ErrCacheNotFound)
}

func TestStoreAndLoadIgnoreAge(t *testing.T) {
	fc := newTestCache(t)
	fc.now = func() time.Time { return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, Store(fc, Named("use_ip"), map[string]bool{"use": false}))

	fc.now = time.Now
	var v map[string]bool
	require.NoError(t, Load(fc, Named("use_ip"), &v))
	require.Equal(t, map[string]bool{"use": false}, v)
}
