// Package plugins defines the common interface for the Naver workflow sources
package plugins

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/naverflow/naverflow/alfred"
)

// Query is one invocation's input. It is built once and never modified.
type Query struct {
	// Text is the search text in NFC form
	Text string
	// Lang selects a dictionary, e.g. "koko" or "enko"
	Lang string
	// UseIP is set only by the map search, which persists it for the
	// place/address/bus sub-searches
	UseIP *bool
}

// NewQuery joins the launcher arguments and normalizes them. Alfred hands
// scripts decomposed (NFD) Hangul, which Naver does not match.
func NewQuery(args []string) Query {
	text := strings.Join(args, " ")
	return Query{Text: norm.NFC.String(strings.TrimSpace(text))}
}

// Plugin defines the minimal interface that all sources must implement
type Plugin interface {
	// Name returns the name of the plugin (e.g., "map", "dict")
	Name() string

	// Run answers q with an ordered result list
	Run(ctx context.Context, q Query) (*alfred.Feedback, error)
}

// Registry maps each workflow subcommand name ("map", "dict", "finance",
// ...) to the Naver source that answers it. The CLI looks plugins up by
// the subcommand it was invoked with.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new plugin registry
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry
func (r *Registry) Register(plugin Plugin) {
	r.plugins[plugin.Name()] = plugin
}

// GetPlugin retrieves a plugin by name
func (r *Registry) GetPlugin(name string) (Plugin, bool) {
	plugin, exists := r.plugins[name]
	return plugin, exists
}

// List returns all registered subcommand names in sorted order, as shown in
// lookup errors
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
