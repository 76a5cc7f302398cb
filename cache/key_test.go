package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key      Key
		expected string
	}{
		{NewKey(SourceMap, "서울", false), "navmap_서울"},
		{NewKey(SourceMap, "서울", true), "navmapip_서울"},
		{NewKey(SourceAddress, "강남대로", true), "navaddressip_강남대로"},
		{NewKey(SourceDictionary, "한글", false), "kr_한글"},
		{Named("location_data"), "location_data"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.expected {
			t.Errorf("Key.String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestKeyFilename(t *testing.T) {
	require.Equal(t, "navmap_서울.json", NewKey(SourceMap, "서울", false).Filename())

	// sanitized keys must not collide with keys that already look sanitized
	slash := NewKey(SourceMap, "a/b", false).Filename()
	underscore := NewKey(SourceMap, "a_b", false).Filename()
	require.NotEqual(t, slash, underscore)
	require.NotContains(t, slash, "/")

	long := NewKey(SourceSearch, strings.Repeat("가", 100), false).Filename()
	require.True(t, strings.HasPrefix(long, "hash_"), "long keys should be hashed, got %s", long)
	require.True(t, strings.HasSuffix(long, ".json"))
}

func TestKeyFilenameDistinguishesSources(t *testing.T) {
	require.NotEqual(t,
		NewKey(SourcePlace, "x", false).Filename(),
		NewKey(SourceAddress, "x", false).Filename())
	require.NotEqual(t,
		NewKey(SourceMap, "x", true).Filename(),
		NewKey(SourceMap, "x", false).Filename())
}
