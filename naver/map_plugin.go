package naver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/naverflow/naverflow/alfred"
	"github.com/naverflow/naverflow/cache"
	"github.com/naverflow/naverflow/internal/config"
	"github.com/naverflow/naverflow/plugins"
)

// MapPlugin searches places, addresses and bus routes at once and offers
// narrowing to one of them.
type MapPlugin struct {
	*Deps
}

func NewMapPlugin(d *Deps) *MapPlugin {
	return &MapPlugin{Deps: d}
}

func (p *MapPlugin) Name() string {
	return "map"
}

func (p *MapPlugin) Run(ctx context.Context, q plugins.Query) (*alfred.Feedback, error) {
	useIP := true
	if q.UseIP != nil {
		useIP = *q.UseIP
	}
	p.saveUseIP(ctx, useIP)

	key := cache.NewKey(cache.SourceMap, q.Text, useIP)
	res, err := cache.Fetch(ctx, p.Cache, key, p.Config.CacheAge(), func() (*InstantSearch, error) {
		return p.Client.InstantSearch(ctx, q.Text, p.coordinates(ctx, useIP))
	})
	if err != nil {
		return nil, fmt.Errorf("map search: %w", err)
	}
	if res == nil {
		res = &InstantSearch{}
	}

	phrase := "Search Naver Map for"
	if useIP {
		phrase = "Search Naver Map(ip) for"
	}

	fb := alfred.NewFeedback()
	fb.Add(alfred.Item{
		Title:        fmt.Sprintf("%s '%s'", phrase, q.Text),
		Autocomplete: q.Text,
		Arg:          MapSearchPage(q.Text),
		QuickLookURL: MapSearchPage(q.Text),
		Valid:        true,
	})

	if res.Empty() {
		fb.AddNoResults(q.Text)
	}

	narrow := []struct {
		count   int
		label   string
		icon    string
		mapType config.MapType
	}{
		{len(res.Place), "Place", IconPlace, config.MapTypePlace},
		{len(res.Address), "Address", IconAddress, config.MapTypeAddress},
		{len(res.Bus), "Bus", IconBus, config.MapTypeBus},
	}
	for _, n := range narrow {
		if n.count == 0 {
			continue
		}
		fb.Add(alfred.Item{
			Title:        fmt.Sprintf("Search only %s for '%s'", n.label, q.Text),
			Autocomplete: q.Text,
			Arg:          q.Text,
			Icon:         &alfred.Icon{Path: n.icon},
			Valid:        true,
		}).SetVar("map_type", string(n.mapType))
	}

	addAll(ctx, fb, res.All, MixedItem, nil)
	return fb, nil
}

// MapHubPlugin shows only the results of the configured map type.
type MapHubPlugin struct {
	*Deps
}

func NewMapHubPlugin(d *Deps) *MapHubPlugin {
	return &MapHubPlugin{Deps: d}
}

func (p *MapHubPlugin) Name() string {
	return "map-hub"
}

func (p *MapHubPlugin) Run(ctx context.Context, q plugins.Query) (*alfred.Feedback, error) {
	if err := p.Config.RequireMapType(); err != nil {
		return nil, err
	}
	useIP := p.useIP(ctx)
	age := p.Config.CacheAge()
	fb := alfred.NewFeedback()

	var (
		found int
		add   func()
	)
	switch p.Config.Map.Type {
	case config.MapTypePlace:
		places, err := p.places(ctx, q.Text, useIP, age)
		if err != nil {
			return nil, err
		}
		found = len(places)
		add = func() { addAll(ctx, fb, places, PlaceItem, hubStyle("Place", IconPlace)) }
	case config.MapTypeAddress:
		addresses, err := p.addresses(ctx, q.Text, useIP, age)
		if err != nil {
			return nil, err
		}
		found = len(addresses)
		add = func() { addAll(ctx, fb, addresses, AddressItem, hubStyle("Address", IconAddress)) }
	case config.MapTypeBus:
		buses, err := p.buses(ctx, q.Text, useIP, age)
		if err != nil {
			return nil, err
		}
		found = len(buses)
		add = func() { addAll(ctx, fb, buses, BusItem, hubStyle("Bus", IconBus)) }
	default:
		return nil, fmt.Errorf("unknown map_type %q", p.Config.Map.Type)
	}

	if found == 0 {
		fb.AddNoResults(q.Text)
	}

	fb.Add(alfred.Item{
		Title:        fmt.Sprintf("Search Naver Map for '%s'", q.Text),
		Autocomplete: q.Text,
		Arg:          MapSearchPage(q.Text),
		QuickLookURL: MapSearchPage(q.Text),
		Valid:        true,
	})

	fb.Add(alfred.Item{
		Title:        fmt.Sprintf("Return... search naver map for '%s'", q.Text),
		Autocomplete: q.Text,
		Arg:          q.Text,
		Valid:        true,
	}).SetVar("useIP", strconv.FormatBool(useIP)).SetVar("return", "true")

	add()
	return fb, nil
}

// hubStyle retitles a mapped item for the single-type result list.
func hubStyle(label, icon string) func(*alfred.Item) {
	return func(it *alfred.Item) {
		it.Title = fmt.Sprintf("Search %s for '%s'", label, it.Autocomplete)
		it.WithIcon(icon)
	}
}

// PlacePlugin searches places around the default coordinates.
type PlacePlugin struct {
	*Deps
}

func NewPlacePlugin(d *Deps) *PlacePlugin {
	return &PlacePlugin{Deps: d}
}

func (p *PlacePlugin) Name() string {
	return "place"
}

func (p *PlacePlugin) Run(ctx context.Context, q plugins.Query) (*alfred.Feedback, error) {
	fb := alfred.NewFeedback()
	fb.Add(alfred.Item{
		Title:        fmt.Sprintf("Search Place for '%s'", q.Text),
		Autocomplete: q.Text,
		Arg:          MapSearchPage(q.Text),
		QuickLookURL: MapSearchPage(q.Text),
		Valid:        true,
	})

	places, err := p.places(ctx, q.Text, false, p.Config.QueryCacheAge())
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		fb.AddNoResults(q.Text)
	}
	addAll(ctx, fb, places, PlaceItem, nil)
	return fb, nil
}

// AddressPlugin searches addresses, around the IP location unless the map
// search last ran without it.
type AddressPlugin struct {
	*Deps
}

func NewAddressPlugin(d *Deps) *AddressPlugin {
	return &AddressPlugin{Deps: d}
}

func (p *AddressPlugin) Name() string {
	return "address"
}

func (p *AddressPlugin) Run(ctx context.Context, q plugins.Query) (*alfred.Feedback, error) {
	fb := alfred.NewFeedback()
	fb.Add(alfred.Item{
		Title:        fmt.Sprintf("Search Address for '%s'", q.Text),
		Autocomplete: q.Text,
		Arg:          MapSearchPage(q.Text),
		QuickLookURL: MapSearchPage(q.Text),
		Valid:        true,
	})

	addresses, err := p.addresses(ctx, q.Text, p.useIP(ctx), p.Config.CacheAge())
	if err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		fb.AddNoResults(q.Text)
	}
	addAll(ctx, fb, addresses, AddressItem, nil)
	return fb, nil
}

func (d *Deps) places(ctx context.Context, query string, useIP bool, age time.Duration) ([]Place, error) {
	key := cache.NewKey(cache.SourcePlace, query, useIP)
	places, err := cache.Fetch(ctx, d.Cache, key, age, func() ([]Place, error) {
		r, err := d.Client.InstantSearch(ctx, query, d.coordinates(ctx, useIP))
		if err != nil {
			return nil, err
		}
		return r.Place, nil
	})
	if err != nil {
		return nil, fmt.Errorf("place search: %w", err)
	}
	return places, nil
}

func (d *Deps) addresses(ctx context.Context, query string, useIP bool, age time.Duration) ([]Address, error) {
	key := cache.NewKey(cache.SourceAddress, query, useIP)
	addresses, err := cache.Fetch(ctx, d.Cache, key, age, func() ([]Address, error) {
		r, err := d.Client.InstantSearch(ctx, query, d.coordinates(ctx, useIP))
		if err != nil {
			return nil, err
		}
		return r.Address, nil
	})
	if err != nil {
		return nil, fmt.Errorf("address search: %w", err)
	}
	return addresses, nil
}

func (d *Deps) buses(ctx context.Context, query string, useIP bool, age time.Duration) ([]Bus, error) {
	key := cache.NewKey(cache.SourceBus, query, useIP)
	buses, err := cache.Fetch(ctx, d.Cache, key, age, func() ([]Bus, error) {
		r, err := d.Client.InstantSearch(ctx, query, d.coordinates(ctx, useIP))
		if err != nil {
			return nil, err
		}
		return r.Bus, nil
	})
	if err != nil {
		return nil, fmt.Errorf("bus search: %w", err)
	}
	return buses, nil
}
