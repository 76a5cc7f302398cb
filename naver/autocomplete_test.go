package naver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const krdicResponse = `{
	"query": ["한글"],
	"items": [
		[
			[["한글"], ["韓-"]],
			[["한글날"], ["-날"]],
			[]
		],
		[
			[["한글 맞춤법"]]
		]
	]
}`

func TestAutocompleteTermsFlattensDictionaryItems(t *testing.T) {
	terms := AutocompleteTerms([]byte(krdicResponse))
	require.Equal(t, []string{"한글", "한글날", "한글 맞춤법"}, terms)
}

func TestDictionaryItemsMatchNonEmptyEntries(t *testing.T) {
	items := DictionaryItems(Krdic, []byte(krdicResponse))

	// three non-empty entries across both groups
	require.Len(t, items, 3)
	require.Equal(t, "한글날", items[1].Title)
	require.Equal(t, "Search Naver Krdic for '한글날'", items[1].Subtitle)
	require.Equal(t, "https://ko.dict.naver.com/#/search?query=%ED%95%9C%EA%B8%80%EB%82%A0", items[1].QuickLookURL)
	require.Equal(t, "koko", items[1].Variables["lang"])
}

func TestAutocompleteTermsSearchShape(t *testing.T) {
	raw := `{"query":["한글"],"items":[[["한글"],["한글날"],["한글 타자"]]]}`
	require.Equal(t, []string{"한글", "한글날", "한글 타자"}, AutocompleteTerms([]byte(raw)))
}

func TestAutocompleteTermsWithoutItems(t *testing.T) {
	require.Empty(t, AutocompleteTerms([]byte(`{"query":["zzzz"]}`)))
	require.Empty(t, AutocompleteTerms([]byte(`{"items":[[]]}`)))
}

func TestKeywordNamesSkipsEmpty(t *testing.T) {
	list := `[{"keywordName":"노트북"},{"keywordName":""},{"rank":3},{"keywordName":"노트북 가방"}]`
	require.Equal(t, []string{"노트북", "노트북 가방"}, KeywordNames([]byte(list)))
}

func TestLookupDictionary(t *testing.T) {
	tests := []struct {
		code string
		ok   bool
		name string
	}{
		{"koko", true, "Krdic"},
		{"ENKO", true, "Endic"},
		{"enen", true, "Enendic"},
		{"ccko", true, "Hanja"},
		{"jako", true, "JA Dic"},
		{"elko", true, "EL Dic"},
		{"xxko", false, ""},
		{"ja", false, ""},
	}

	for _, tt := range tests {
		d, ok := LookupDictionary(tt.code)
		if ok != tt.ok {
			t.Errorf("LookupDictionary(%q) ok = %v, want %v", tt.code, ok, tt.ok)
			continue
		}
		if ok && d.Name != tt.name {
			t.Errorf("LookupDictionary(%q) name = %q, want %q", tt.code, d.Name, tt.name)
		}
	}

	ja, _ := LookupDictionary("jako")
	require.Equal(t, "https://ja.dict.naver.com/#/search?query=abc", ja.SearchPage("abc"))
	require.Equal(t, "jako", ja.CacheSource())
	require.Equal(t, "kr", Krdic.CacheSource())
}
