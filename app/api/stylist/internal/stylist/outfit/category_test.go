package outfit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		label string
		want  string
		ok    bool
	}{
		{"top", CategoryTop, true},
		{"TOPS", CategoryTop, true},
		{" bottoms ", CategoryBottom, true},
		{"dress", CategoryDresses, true},
		{"Dresses", CategoryDresses, true},
		{"outerwear", CategoryOuterwear, true},
		{"swimsuit", CategorySwimwear, true},
		{"shoe", CategoryShoes, true},
		{"Footwear", CategoryShoes, true},
		{"accessory", CategoryAccessories, true},
		{"accessories", CategoryAccessories, true},
		{"sneakers", "", false},
		{"", "", false},
		{"  ", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeCategory(tt.label)
		require.Equal(t, tt.ok, ok, "label %q", tt.label)
		require.Equal(t, tt.want, got, "label %q", tt.label)
	}
}

func TestCanonicalCategoriesRoundTrip(t *testing.T) {
	for _, c := range Categories {
		require.True(t, IsCanonicalCategory(c))

		got, ok := NormalizeCategory(c)
		require.True(t, ok)
		require.Equal(t, c, got)
	}
	require.False(t, IsCanonicalCategory("Top"))
}

func TestEurosToCents(t *testing.T) {
	require.Equal(t, int64(1999), EurosToCents(19.99))
	require.Equal(t, int64(9000), EurosToCents(90))
	require.Equal(t, int64(2999), EurosToCents(29.985))
	require.Equal(t, int64(0), EurosToCents(0))
	require.InDelta(t, 40.0, CentsToEuros(4000), 1e-9)
	require.InDelta(t, -90.0, CentsToEuros(-9000), 1e-9)
}
