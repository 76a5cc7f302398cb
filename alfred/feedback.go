// Package alfred renders result lists in Alfred's Script Filter JSON format.
package alfred

import (
	"encoding/json"
	"fmt"
	"io"
)

// IconNoResults is the icon shown on the "no results" placeholder.
const IconNoResults = "noresults.png"

// Icon references an image file relative to the workflow directory.
type Icon struct {
	Path string `json:"path"`
}

// Text holds the values used for copy (⌘C) and large type (⌘L).
type Text struct {
	Copy      string `json:"copy,omitempty"`
	LargeType string `json:"largetype,omitempty"`
}

// Item is one row of the result list.
type Item struct {
	Title        string            `json:"title"`
	Subtitle     string            `json:"subtitle,omitempty"`
	Arg          string            `json:"arg,omitempty"`
	Autocomplete string            `json:"autocomplete,omitempty"`
	Valid        bool              `json:"valid"`
	QuickLookURL string            `json:"quicklookurl,omitempty"`
	Text         *Text             `json:"text,omitempty"`
	Icon         *Icon             `json:"icon,omitempty"`
	Variables    map[string]string `json:"variables,omitempty"`
}

// SetVar sets a workflow variable passed on when the item is actioned.
func (it *Item) SetVar(name, value string) *Item {
	if it.Variables == nil {
		it.Variables = make(map[string]string)
	}
	it.Variables[name] = value
	return it
}

// WithIcon sets the item icon. An empty path clears it.
func (it *Item) WithIcon(path string) *Item {
	if path == "" {
		it.Icon = nil
		return it
	}
	it.Icon = &Icon{Path: path}
	return it
}

// WithText sets the same value for copy and large type.
func (it *Item) WithText(s string) *Item {
	it.Text = &Text{Copy: s, LargeType: s}
	return it
}

// Feedback is the ordered result list written back to Alfred.
type Feedback struct {
	Items []*Item `json:"items"`
}

// NewFeedback returns an empty result list.
func NewFeedback() *Feedback {
	return &Feedback{Items: []*Item{}}
}

// Add appends item and returns it for further changes.
func (fb *Feedback) Add(item Item) *Item {
	it := &item
	fb.Items = append(fb.Items, it)
	return it
}

// AddNoResults appends the non-actionable placeholder shown when a search
// returned nothing.
func (fb *Feedback) AddNoResults(query string) *Item {
	return fb.Add(Item{
		Title: fmt.Sprintf("No search results for '%s'", query),
		Icon:  &Icon{Path: IconNoResults},
		Valid: false,
	})
}

// Len returns the number of items.
func (fb *Feedback) Len() int {
	return len(fb.Items)
}

// Send writes the result list as JSON.
func (fb *Feedback) Send(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fb); err != nil {
		return fmt.Errorf("write feedback: %w", err)
	}
	return nil
}
