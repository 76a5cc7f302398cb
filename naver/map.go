package naver

import (
	"context"
	"errors"
	"net/url"
)

var mapHeaders = map[string]string{
	"Referer": "https://map.naver.com/",
}

// Location returns the coordinates Naver Map derives from the caller's IP.
func (c *Client) Location(ctx context.Context) (Coordinates, error) {
	var r locationResponse
	if err := c.getJSON(ctx, MapLocationURL, nil, mapHeaders, &r); err != nil {
		return Coordinates{}, err
	}
	if r.LngLat == nil || r.LngLat.Lat == "" || r.LngLat.Lng == "" {
		return Coordinates{}, errors.New("location response has no lngLat")
	}
	return *r.LngLat, nil
}

// InstantSearch runs the map search-as-you-type query around at.
func (c *Client) InstantSearch(ctx context.Context, query string, at Coordinates) (*InstantSearch, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", "all")
	params.Set("coords", at.Param())
	params.Set("lang", "ko")
	params.Set("caller", "pcweb")

	var r InstantSearch
	if err := c.getJSON(ctx, MapSearchURL, params, mapHeaders, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
