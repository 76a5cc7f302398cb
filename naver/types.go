package naver

import (
	"bytes"
	"encoding/json"
)

// FlexString decodes JSON strings and numbers alike. Naver returns ids and
// coordinates as either, depending on the endpoint.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = FlexString(n.String())
	return nil
}

func (s FlexString) String() string { return string(s) }

// Coordinates is a latitude/longitude pair as sent to the search endpoints.
type Coordinates struct {
	Lat FlexString `json:"lat"`
	Lng FlexString `json:"lng"`
}

// Param formats the pair as the "lat,lng" search parameter.
func (c Coordinates) Param() string {
	return string(c.Lat) + "," + string(c.Lng)
}

type locationResponse struct {
	LngLat *Coordinates `json:"lngLat"`
}

// Place is a point of interest from the map instant search.
type Place struct {
	ID           FlexString `json:"id"`
	Title        string     `json:"title"`
	Type         string     `json:"type"`
	RoadAddress  string     `json:"roadAddress"`
	JibunAddress string     `json:"jibunAddress"`
	X            FlexString `json:"x"`
	Y            FlexString `json:"y"`
}

// Address is a geocoded address from the map instant search.
type Address struct {
	Title       string     `json:"title"`
	FullAddress string     `json:"fullAddress"`
	X           FlexString `json:"x"`
	Y           FlexString `json:"y"`
}

// Bus is a bus route from the map instant search.
type Bus struct {
	ID       FlexString `json:"id"`
	Title    string     `json:"title"`
	CityName string     `json:"cityName"`
	Type     string     `json:"type"`
}

// MixedResult is one entry of the "all" list; exactly one field is set.
type MixedResult struct {
	Place   *Place   `json:"place,omitempty"`
	Address *Address `json:"address,omitempty"`
	Bus     *Bus     `json:"bus,omitempty"`
}

// InstantSearch is the map instant search response.
type InstantSearch struct {
	All     []MixedResult `json:"all"`
	Place   []Place       `json:"place"`
	Address []Address     `json:"address"`
	Bus     []Bus         `json:"bus"`
}

// Empty reports whether no place, address or bus matched.
func (r *InstantSearch) Empty() bool {
	return r == nil || (len(r.Place) == 0 && len(r.Address) == 0 && len(r.Bus) == 0)
}

// Stock is one finance autocomplete entry.
type Stock struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	TypeCode   string `json:"typeCode"`
	TypeName   string `json:"typeName"`
	NationCode string `json:"nationCode"`
	NationName string `json:"nationName"`
	URL        string `json:"url,omitempty"`
}

// FinanceResponse is the finance autocomplete response.
type FinanceResponse struct {
	Query string  `json:"query"`
	Items []Stock `json:"items"`
}
