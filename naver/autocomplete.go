package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/naverflow/naverflow/cache"
)

// Dictionary describes one Naver dictionary autocomplete service.
type Dictionary struct {
	Code    string // ac-dict path segment, e.g. "koko"
	Name    string // shown in item titles
	Form    string // "frm" request parameter
	PageURL string // search page; %s is replaced with the escaped query
}

// SearchPage returns the dictionary search page for term.
func (d Dictionary) SearchPage(term string) string {
	return fmt.Sprintf(d.PageURL, url.QueryEscape(term))
}

// CacheSource is the cache key tag for the dictionary's results.
func (d Dictionary) CacheSource() string {
	if d.Code == Krdic.Code {
		return cache.SourceDictionary
	}
	return d.Code
}

var (
	Krdic = Dictionary{
		Code:    "koko",
		Name:    "Krdic",
		Form:    "stdkrdic",
		PageURL: "https://ko.dict.naver.com/#/search?query=%s",
	}
	Endic = Dictionary{
		Code:    "enko",
		Name:    "Endic",
		Form:    "endic",
		PageURL: "https://en.dict.naver.com/#/search?query=%s",
	}
	Enendic = Dictionary{
		Code:    "enen",
		Name:    "Enendic",
		Form:    "enendic",
		PageURL: "https://en.dict.naver.com/#/search?range=all&query=%s",
	}
	Hanja = Dictionary{
		Code:    "ccko",
		Name:    "Hanja",
		Form:    "hanjadic",
		PageURL: "https://hanja.dict.naver.com/#/search?query=%s",
	}
)

// CommonLanguages are the foreign-Korean dictionaries served under
// "<lang>ko".
var CommonLanguages = []string{
	"ja", "zh", "vi", "th", "uz", "de", "fr", "it", "es", "ru", "id", "ne", "mn", "my", "sw", "ar",
	"km", "fa", "hi", "nl", "sv", "uk", "ka", "cs", "hr", "tr", "pt", "pl", "fi", "hu", "sq", "ro",
	"la", "el",
}

// LookupDictionary resolves a dictionary code such as "koko", "enko" or "jako".
func LookupDictionary(code string) (Dictionary, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, d := range []Dictionary{Krdic, Endic, Enendic, Hanja} {
		if d.Code == code {
			return d, true
		}
	}
	lang, ok := strings.CutSuffix(code, "ko")
	if !ok {
		return Dictionary{}, false
	}
	for _, l := range CommonLanguages {
		if l == lang {
			return Dictionary{
				Code:    code,
				Name:    strings.ToUpper(lang) + " Dic",
				Form:    "nndic",
				PageURL: "https://" + lang + ".dict.naver.com/#/search?query=%s",
			}, true
		}
	}
	return Dictionary{}, false
}

// DictionaryAutocomplete returns the raw autocomplete response of d for query.
func (c *Client) DictionaryAutocomplete(ctx context.Context, d Dictionary, query string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("frm", d.Form)
	params.Set("oe", "utf8")
	params.Set("m", "0")
	params.Set("r", "1")
	params.Set("st", "111")
	params.Set("r_lt", "111")
	params.Set("q", query)

	var raw json.RawMessage
	if err := c.getJSON(ctx, fmt.Sprintf(DictionaryURL, d.Code), params, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// SearchAutocomplete returns the raw Naver web search autocomplete response.
func (c *Client) SearchAutocomplete(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("con", "1")
	params.Set("frm", "nv")
	params.Set("ans", "2")
	params.Set("r_format", "json")
	params.Set("r_enc", "UTF-8")
	params.Set("r_unicode", "0")
	params.Set("t_koreng", "1")
	params.Set("run", "2")
	params.Set("rev", "4")
	params.Set("q_enc", "UTF-8")
	params.Set("st", "100")

	var raw json.RawMessage
	if err := c.getJSON(ctx, SearchURL, params, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// StockAutocomplete searches indices, stocks and market indicators.
func (c *Client) StockAutocomplete(ctx context.Context, query string) (*FinanceResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("target", "index,stock,marketindicator")
	params.Set("lang", "ko")
	params.Set("caller", "pcweb")

	var r FinanceResponse
	if err := c.getJSON(ctx, FinanceURL, params, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ShoppingKeywords returns the raw keyword list of the shopping autocomplete.
func (c *Client) ShoppingKeywords(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("keyword", query)
	params.Set("personalizeYn", "n")

	var raw json.RawMessage
	if err := c.getJSON(ctx, ShoppingURL, params, nil, &raw); err != nil {
		return nil, err
	}
	list := gjson.GetBytes(raw, "result.keywordList")
	if !list.Exists() {
		return nil, fmt.Errorf("shopping response has no result.keywordList")
	}
	return json.RawMessage(list.Raw), nil
}

// AutocompleteTerms flattens the nested "items" lists of an autocomplete
// response. Every non-empty entry contributes its first string, found either
// at entry[0] or entry[0][0].
func AutocompleteTerms(raw []byte) []string {
	terms := []string{}
	gjson.GetBytes(raw, "items").ForEach(func(_, group gjson.Result) bool {
		group.ForEach(func(_, entry gjson.Result) bool {
			if !entry.IsArray() {
				return true
			}
			first := entry.Get("0")
			if first.IsArray() {
				first = first.Get("0")
			}
			if s := first.String(); s != "" {
				terms = append(terms, s)
			}
			return true
		})
		return true
	})
	return terms
}

// KeywordNames extracts every non-empty keywordName from a shopping keyword list.
func KeywordNames(list []byte) []string {
	names := []string{}
	gjson.ParseBytes(list).ForEach(func(_, kw gjson.Result) bool {
		if name := kw.Get("keywordName").String(); name != "" {
			names = append(names, name)
		}
		return true
	})
	return names
}
