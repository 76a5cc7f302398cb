package naver

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/naverflow/naverflow/alfred"
)

// Icons shipped with the workflow.
const (
	IconPlace   = "7FBDB33A-E342-411C-B00B-8B797AE8C19A.png"
	IconAddress = "3F6E3BB6-64CC-481E-990D-F3823D3616A8.png"
	IconBus     = "845B46E7-61FB-43CD-A287-FCB4C075A4A6.png"
)

// ErrMissingField is wrapped by mapping errors for items lacking a required field.
var ErrMissingField = errors.New("missing required field")

func missing(kind, field string) error {
	return fmt.Errorf("%s: %w %q", kind, ErrMissingField, field)
}

// MapSearchPage is the Naver Map search page for query.
func MapSearchPage(query string) string {
	return "https://map.naver.com/p/search/" + url.PathEscape(query)
}

func mapTypedSearchURL(title, kind string, id FlexString) string {
	return fmt.Sprintf("https://map.naver.com/p/search/%s/%s/%s",
		url.PathEscape(title), url.PathEscape(kind), url.PathEscape(id.String()))
}

func mapEntryURL(y, x FlexString, address string) string {
	return fmt.Sprintf("https://map.naver.com/p/entry/address/%s,%s,%s", y, x, url.PathEscape(address))
}

// FinanceItemURL is the stock page for code.
func FinanceItemURL(code string) string {
	return "https://finance.naver.com/item/main.naver?code=" + url.QueryEscape(code)
}

// ShoppingSearchURL is the shopping search page for query.
func ShoppingSearchURL(query string) string {
	return "https://search.shopping.naver.com/ns/search?query=" + url.QueryEscape(query)
}

// WebSearchURL is the Naver web search page for query.
func WebSearchURL(query string) string {
	return "https://search.naver.com/search.naver?query=" + url.QueryEscape(query)
}

// PlaceItem maps a place. The subtitle is the road address, or the lot
// number address when the place has no road address.
func PlaceItem(p Place) (alfred.Item, error) {
	switch {
	case p.Title == "":
		return alfred.Item{}, missing("place", "title")
	case p.ID == "":
		return alfred.Item{}, missing("place", "id")
	case p.Type == "":
		return alfred.Item{}, missing("place", "type")
	}

	address := p.RoadAddress
	if address == "" {
		address = p.JibunAddress
	}
	link := mapTypedSearchURL(p.Title, p.Type, p.ID)

	it := alfred.Item{
		Title:        fmt.Sprintf("Search Naver Map for '%s'", p.Title),
		Subtitle:     address,
		Autocomplete: p.Title,
		Arg:          link,
		QuickLookURL: link,
		Valid:        true,
	}
	it.WithText(p.Title)
	return it, nil
}

// AddressItem maps a geocoded address to a map entry link.
func AddressItem(a Address) (alfred.Item, error) {
	switch {
	case a.FullAddress == "":
		return alfred.Item{}, missing("address", "fullAddress")
	case a.X == "" || a.Y == "":
		return alfred.Item{}, missing("address", "x/y")
	}

	link := mapEntryURL(a.Y, a.X, a.FullAddress)
	it := alfred.Item{
		Title:        fmt.Sprintf("Search Naver Map for '%s'", a.FullAddress),
		Subtitle:     a.Title,
		Autocomplete: a.FullAddress,
		Arg:          link,
		QuickLookURL: link,
		Valid:        true,
	}
	it.WithText(a.FullAddress)
	return it, nil
}

// BusItem maps a bus route.
func BusItem(b Bus) (alfred.Item, error) {
	switch {
	case b.Title == "":
		return alfred.Item{}, missing("bus", "title")
	case b.ID == "":
		return alfred.Item{}, missing("bus", "id")
	}

	link := mapTypedSearchURL(b.Title, "bus-route", b.ID)
	it := alfred.Item{
		Title:        fmt.Sprintf("Search Naver Map for '%s'", b.Title),
		Subtitle:     b.CityName + "버스 " + b.Title,
		Autocomplete: b.Title,
		Arg:          link,
		QuickLookURL: link,
		Valid:        true,
	}
	it.WithText(b.Title)
	return it, nil
}

// MixedItem maps one entry of the "all" list.
func MixedItem(m MixedResult) (alfred.Item, error) {
	switch {
	case m.Address != nil:
		return AddressItem(*m.Address)
	case m.Place != nil:
		return PlaceItem(*m.Place)
	case m.Bus != nil:
		return BusItem(*m.Bus)
	}
	return alfred.Item{}, errors.New("result is neither place, address nor bus")
}

// StockItem maps a finance autocomplete entry.
func StockItem(s Stock) (alfred.Item, error) {
	switch {
	case s.Code == "":
		return alfred.Item{}, missing("stock", "code")
	case s.Name == "":
		return alfred.Item{}, missing("stock", "name")
	}

	link := FinanceItemURL(s.Code)
	it := alfred.Item{
		Title:        fmt.Sprintf("Search Naver Finance for '%s'", s.Name),
		Subtitle:     fmt.Sprintf("%s, %s, %s, %s", s.Code, s.TypeCode, s.NationName, s.Name),
		Autocomplete: s.Name,
		Arg:          link,
		QuickLookURL: link,
		Valid:        true,
	}
	it.WithText(fmt.Sprintf("%s, %s", s.Code, s.Name))
	return it, nil
}
