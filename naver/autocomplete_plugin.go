package naver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/naverflow/naverflow/alfred"
	"github.com/naverflow/naverflow/cache"
	"github.com/naverflow/naverflow/plugins"
)

// DictionaryPlugin completes words from a Naver dictionary, the Korean
// dictionary unless the query selects another one.
type DictionaryPlugin struct {
	*Deps
}

func NewDictionaryPlugin(d *Deps) *DictionaryPlugin {
	return &DictionaryPlugin{Deps: d}
}

func (p *DictionaryPlugin) Name() string {
	return "dict"
}

func (p *DictionaryPlugin) Run(ctx context.Context, q plugins.Query) (*alfred.Feedback, error) {
	dict := Krdic
	if q.Lang != "" {
		d, ok := LookupDictionary(q.Lang)
		if !ok {
			return nil, fmt.Errorf("unknown dictionary %q", q.Lang)
		}
		dict = d
	}

	fb := alfred.NewFeedback()
	fb.Add(alfred.Item{
		Title:        fmt.Sprintf("Search Naver %s for '%s'", dict.Name, q.Text),
		Autocomplete: q.Text,
		Arg:          q.Text,
		QuickLookURL: dict.SearchPage(q.Text),
		Valid:        true,
	}).SetVar("lang", dict.Code)

	key := cache.NewKey(dict.CacheSource(), q.Text, false)
	raw, err := cache.Fetch(ctx, p.Cache, key, p.Config.DictCacheAge(), func() (json.RawMessage, error) {
		return p.Client.DictionaryAutocomplete(ctx, dict, q.Text)
	})
	if err != nil {
		return nil, fmt.Errorf("%s autocomplete: %w", dict.Code, err)
	}

	terms := DictionaryItems(dict, raw)
	if len(terms) == 0 {
		fb.AddNoResults(q.Text)
	}
	for _, it := range terms {
		fb.Add(it)
	}
	return fb, nil
}

// DictionaryItems maps every term of a dictionary autocomplete response.
func DictionaryItems(dict Dictionary, raw []byte) []alfred.Item {
	terms := AutocompleteTerms(raw)
	items := make([]alfred.Item, 0, len(terms))
	for _, term := range terms {
		it := alfred.Item{
			Title:        term,
			Subtitle:     fmt.Sprintf("Search Naver %s for '%s'", dict.Name, term),
			Autocomplete: term,
			Arg:          term,
			QuickLookURL: dict.SearchPage(term),
			Valid:        true,
		}
		it.WithText(term).SetVar("lang", dict.Code)
		items = append(items, it)
	}
	return items
}

// SearchPlugin completes Naver web search queries.
type SearchPlugin struct {
	*Deps
}

func NewSearchPlugin(d *Deps) *SearchPlugin {
	return &SearchPlugin{Deps: d}
}

func (p *SearchPlugin) Name() string {
	return "search"
}

func (p *SearchPlugin) Run(ctx context.Context, q plugins.Query) (*alfred.Feedback, error) {
	fb := alfred.NewFeedback()
	fb.Add(alfred.Item{
		Title:        fmt.Sprintf("Search Naver for '%s'", q.Text),
		Autocomplete: q.Text,
		Arg:          q.Text,
		QuickLookURL: WebSearchURL(q.Text),
		Valid:        true,
	})

	key := cache.NewKey(cache.SourceSearch, q.Text, false)
	raw, err := cache.Fetch(ctx, p.Cache, key, p.Config.CacheAge(), func() (json.RawMessage, error) {
		return p.Client.SearchAutocomplete(ctx, q.Text)
	})
	if err != nil {
		return nil, fmt.Errorf("search autocomplete: %w", err)
	}

	terms := AutocompleteTerms(raw)
	if len(terms) == 0 {
		fb.AddNoResults(q.Text)
	}
	for _, term := range terms {
		fb.Add(alfred.Item{
			Title:        fmt.Sprintf("Search Naver for '%s'", term),
			Autocomplete: term,
			Arg:          term,
			QuickLookURL: WebSearchURL(term),
			Valid:        true,
		}).WithText(term)
	}
	return fb, nil
}

// ShoppingPlugin completes Naver Shopping keywords.
type ShoppingPlugin struct {
	*Deps
}

func NewShoppingPlugin(d *Deps) *ShoppingPlugin {
	return &ShoppingPlugin{Deps: d}
}

func (p *ShoppingPlugin) Name() string {
	return "shopping"
}

func (p *ShoppingPlugin) Run(ctx context.Context, q plugins.Query) (*alfred.Feedback, error) {
	fb := alfred.NewFeedback()
	fb.Add(alfred.Item{
		Title:        fmt.Sprintf("Search Naver Shopping for '%s'", q.Text),
		Autocomplete: q.Text,
		Arg:          q.Text,
		QuickLookURL: ShoppingSearchURL(q.Text),
		Valid:        true,
	})

	key := cache.NewKey(cache.SourceShopping, q.Text, false)
	list, err := cache.Fetch(ctx, p.Cache, key, p.Config.CacheAge(), func() (json.RawMessage, error) {
		return p.Client.ShoppingKeywords(ctx, q.Text)
	})
	if err != nil {
		return nil, fmt.Errorf("shopping autocomplete: %w", err)
	}

	names := KeywordNames(list)
	if len(names) == 0 {
		fb.AddNoResults(q.Text)
	}
	for _, name := range names {
		fb.Add(alfred.Item{
			Title:        fmt.Sprintf("Search Naver Shopping for '%s'", name),
			Autocomplete: name,
			Arg:          name,
			QuickLookURL: ShoppingSearchURL(name),
			Valid:        true,
		}).WithText(name)
	}
	return fb, nil
}

// FinancePlugin looks up stocks, indices and market indicators.
type FinancePlugin struct {
	*Deps
}

func NewFinancePlugin(d *Deps) *FinancePlugin {
	return &FinancePlugin{Deps: d}
}

func (p *FinancePlugin) Name() string {
	return "finance"
}

func (p *FinancePlugin) Run(ctx context.Context, q plugins.Query) (*alfred.Feedback, error) {
	key := cache.NewKey(cache.SourceFinance, q.Text, false)
	res, err := cache.Fetch(ctx, p.Cache, key, p.Config.CacheAge(), func() (*FinanceResponse, error) {
		return p.Client.StockAutocomplete(ctx, q.Text)
	})
	if err != nil {
		return nil, fmt.Errorf("finance autocomplete: %w", err)
	}

	fb := alfred.NewFeedback()
	if res == nil || addAll(ctx, fb, res.Items, StockItem, nil) == 0 {
		fb.AddNoResults(q.Text)
	}
	return fb, nil
}
