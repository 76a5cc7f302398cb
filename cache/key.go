package cache

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// Source tags used as the first part of every cache key.
const (
	SourceMap        = "navmap"
	SourcePlace      = "navplace"
	SourceAddress    = "navaddress"
	SourceBus        = "navbus"
	SourceFinance    = "navfinance"
	SourceShopping   = "navs"
	SourceSearch     = "navsearch"
	SourceDictionary = "kr"
)

// Modifier distinguishes cache entries of one source that were fetched
// with different request options.
type Modifier string

const (
	ModifierNone Modifier = ""
	// ModifierIP marks results fetched around IP-based coordinates.
	ModifierIP Modifier = "ip"
)

// Key identifies a cached response. Its string form is
// "<source><modifier>_<query>".
type Key struct {
	Source   string
	Modifier Modifier
	Query    string
}

// NewKey builds a key for source and query, optionally tagged with the IP modifier.
func NewKey(source, query string, useIP bool) Key {
	k := Key{Source: source, Query: query}
	if useIP {
		k.Modifier = ModifierIP
	}
	return k
}

// Named returns a key for a single named value such as a persisted setting.
func Named(name string) Key {
	return Key{Source: name}
}

func (k Key) String() string {
	if k.Query == "" && k.Modifier == ModifierNone {
		return k.Source
	}
	return fmt.Sprintf("%s%s_%s", k.Source, k.Modifier, k.Query)
}

// Filename converts the key to a file name that is safe on every platform.
// Keys altered by sanitizing get a short hash suffix so that two different
// keys never map onto the same file.
func (k Key) Filename() string {
	raw := k.String()

	// For very long keys, use hash to avoid filesystem limits
	if len(raw) > 200 {
		return fmt.Sprintf("hash_%x.json", md5.Sum([]byte(raw)))
	}

	clean := sanitizeKey(raw)
	if clean != raw {
		sum := md5.Sum([]byte(raw))
		clean = fmt.Sprintf("%s_%x", clean, sum[:4])
	}
	return clean + ".json"
}

// sanitizeKey replaces characters that are problematic for filenames
func sanitizeKey(key string) string {
	unsafe := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", "#", "&", "=", "\x00"}
	result := key
	for _, char := range unsafe {
		result = strings.ReplaceAll(result, char, "_")
	}
	if strings.HasPrefix(result, ".") {
		result = "_" + result[1:]
	}
	return result
}
