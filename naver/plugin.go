package naver

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/naverflow/naverflow/alfred"
	"github.com/naverflow/naverflow/cache"
	"github.com/naverflow/naverflow/internal/config"
	"github.com/naverflow/naverflow/plugins"
)

// Deps are shared by every Naver plugin.
type Deps struct {
	Client *Client
	Cache  cache.ReadWriter
	Config *config.Config
}

var (
	locationKey = cache.Named("location_data")
	useIPKey    = cache.Named("use_ip")
)

type ipSetting struct {
	Use bool `json:"use"`
}

// Register adds every Naver plugin to r.
func Register(r *plugins.Registry, d *Deps) {
	r.Register(NewMapPlugin(d))
	r.Register(NewMapHubPlugin(d))
	r.Register(NewPlacePlugin(d))
	r.Register(NewAddressPlugin(d))
	r.Register(NewDictionaryPlugin(d))
	r.Register(NewFinancePlugin(d))
	r.Register(NewShoppingPlugin(d))
	r.Register(NewSearchPlugin(d))
}

// defaultCoordinates are the configured fallback coordinates.
func (d *Deps) defaultCoordinates() Coordinates {
	return Coordinates{
		Lat: FlexString(d.Config.Map.Latitude),
		Lng: FlexString(d.Config.Map.Longitude),
	}
}

// coordinates returns the search origin. IP based lookups are cached; a
// failed lookup is logged and the configured default is used instead.
func (d *Deps) coordinates(ctx context.Context, useIP bool) Coordinates {
	fallback := d.defaultCoordinates()
	if !useIP {
		return fallback
	}

	loc, err := cache.Fetch(ctx, d.Cache, locationKey, d.Config.IPCacheAge(), func() (Coordinates, error) {
		return d.Client.Location(ctx)
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("lat", fallback.Lat.String()).
			Str("lng", fallback.Lng.String()).
			Msg("ip location lookup failed, using default coordinates")
		return fallback
	}
	return loc
}

// useIP reads the setting last written by the map search. IP based
// coordinates are used when it was never written.
func (d *Deps) useIP(ctx context.Context) bool {
	var s ipSetting
	if err := cache.Load(d.Cache, useIPKey, &s); err != nil {
		if !errors.Is(err, cache.ErrCacheNotFound) {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("ignoring unreadable use_ip setting")
		}
		return true
	}
	return s.Use
}

func (d *Deps) saveUseIP(ctx context.Context, use bool) {
	if err := cache.Store(d.Cache, useIPKey, ipSetting{Use: use}); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to save use_ip setting")
	}
}

// addAll appends the mapped items, skipping and logging the ones that
// cannot be mapped. It returns how many items were added.
func addAll[T any](ctx context.Context, fb *alfred.Feedback, results []T, mapper func(T) (alfred.Item, error), adjust func(*alfred.Item)) int {
	added := 0
	for i, r := range results {
		it, err := mapper(r)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Int("index", i).Msg("skipping malformed result")
			continue
		}
		item := fb.Add(it)
		if adjust != nil {
			adjust(item)
		}
		added++
	}
	return added
}
