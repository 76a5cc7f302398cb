package naver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceItemFallsBackToJibunAddress(t *testing.T) {
	it, err := PlaceItem(Place{
		ID:           "11491438",
		Title:        "서울특별시청",
		Type:         "place",
		JibunAddress: "서울특별시 중구 태평로1가 31",
	})
	require.NoError(t, err)
	require.Equal(t, "서울특별시 중구 태평로1가 31", it.Subtitle)
}

func TestPlaceItemPrefersRoadAddress(t *testing.T) {
	it, err := PlaceItem(Place{
		ID:           "11491438",
		Title:        "서울특별시청",
		Type:         "place",
		RoadAddress:  "서울특별시 중구 세종대로 110",
		JibunAddress: "서울특별시 중구 태평로1가 31",
	})
	require.NoError(t, err)

	require.Equal(t, "Search Naver Map for '서울특별시청'", it.Title)
	require.Equal(t, "서울특별시 중구 세종대로 110", it.Subtitle)
	require.Equal(t, "https://map.naver.com/p/search/%EC%84%9C%EC%9A%B8%ED%8A%B9%EB%B3%84%EC%8B%9C%EC%B2%AD/place/11491438", it.Arg)
	require.Equal(t, it.Arg, it.QuickLookURL)
	require.Equal(t, "서울특별시청", it.Text.Copy)
	require.True(t, it.Valid)
}

func TestPlaceItemMissingTitle(t *testing.T) {
	_, err := PlaceItem(Place{ID: "1", Type: "place"})
	require.True(t, errors.Is(err, ErrMissingField))
}

func TestAddressItem(t *testing.T) {
	it, err := AddressItem(Address{
		Title:       "세종대로 110",
		FullAddress: "서울특별시 중구 세종대로 110",
		X:           "126.9783882",
		Y:           "37.5666103",
	})
	require.NoError(t, err)
	require.Equal(t, "세종대로 110", it.Subtitle)
	require.Equal(t, "서울특별시 중구 세종대로 110", it.Autocomplete)
	require.Contains(t, it.Arg, "https://map.naver.com/p/entry/address/37.5666103,126.9783882,")
}

func TestAddressItemMissingCoordinates(t *testing.T) {
	_, err := AddressItem(Address{FullAddress: "서울특별시 중구 세종대로 110"})
	require.ErrorIs(t, err, ErrMissingField)
}

func TestBusItemSubtitle(t *testing.T) {
	it, err := BusItem(Bus{ID: "11000000", Title: "470", CityName: "서울"})
	require.NoError(t, err)
	require.Equal(t, "서울버스 470", it.Subtitle)
	require.Equal(t, "https://map.naver.com/p/search/470/bus-route/11000000", it.Arg)
}

func TestMixedItem(t *testing.T) {
	it, err := MixedItem(MixedResult{Bus: &Bus{ID: "1", Title: "7016", CityName: "서울"}})
	require.NoError(t, err)
	require.Equal(t, "Search Naver Map for '7016'", it.Title)

	_, err = MixedItem(MixedResult{})
	require.Error(t, err)
}

func TestStockItem(t *testing.T) {
	it, err := StockItem(Stock{
		Code:       "005930",
		Name:       "삼성전자",
		TypeCode:   "KOSPI",
		TypeName:   "코스피",
		NationCode: "KOR",
		NationName: "대한민국",
	})
	require.NoError(t, err)
	require.Equal(t, "Search Naver Finance for '삼성전자'", it.Title)
	require.Equal(t, "005930, KOSPI, 대한민국, 삼성전자", it.Subtitle)
	require.Equal(t, "https://finance.naver.com/item/main.naver?code=005930", it.Arg)
	require.Equal(t, "005930, 삼성전자", it.Text.Copy)
	require.Equal(t, "005930, 삼성전자", it.Text.LargeType)
}
