package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/dsnparr/internal/models"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want models.ContentRef
	}{
		{
			name: "movie",
			url:  "https://www.disneyplus.com/movies/star-wars-attack-of-the-clones-episode-ii/mgpYHGnzZW6N",
			want: models.ContentRef{ID: "mgpYHGnzZW6N", Kind: models.KindMovie, Variant: models.VariantDisney},
		},
		{
			name: "series with language and region prefix",
			url:  "https://www.disneyplus.com/en-gb/series/loki/6pARMvILBGzF",
			want: models.ContentRef{ID: "6pARMvILBGzF", Kind: models.KindSeries, Variant: models.VariantDisney},
		},
		{
			name: "series without slug",
			url:  "https://disneyplus.com/series/6pARMvILBGzF",
			want: models.ContentRef{ID: "6pARMvILBGzF", Kind: models.KindSeries, Variant: models.VariantDisney},
		},
		{
			name: "preview host with query",
			url:  "http://preview.disneyplus.com/movies/soul/77zlWrb9vRZp?utm=x",
			want: models.ContentRef{ID: "77zlWrb9vRZp", Kind: models.KindMovie, Variant: models.VariantDisney},
		},
		{
			name: "star plus",
			url:  "https://www.starplus.com/es-419/series/the-bear/3O9Yb3ZkqoUN",
			want: models.ContentRef{ID: "3O9Yb3ZkqoUN", Kind: models.KindSeries, Variant: models.VariantStar},
		},
		{
			name: "library short link",
			url:  "https://dsny.pl/library/us/en/6pARMvILBGzF",
			want: models.ContentRef{ID: "6pARMvILBGzF", Kind: models.KindSeries, Variant: models.VariantDisney},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Locate(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref)
		})
	}
}

func TestLocateFailures(t *testing.T) {
	urls := []string{
		"",
		"https://example.com/movies/soul/77zlWrb9vRZp",
		"https://www.disneyplus.com/movies/soul/77zlWrb9",
		"https://www.disneyplus.com/movies/soul/77zlWrb9vRZpXYZ",
		"https://www.disneyplus.com/home",
	}
	for _, u := range urls {
		_, err := Locate(u)
		assert.ErrorIs(t, err, models.ErrLocate, u)
	}
}

func TestLocateEntityURL(t *testing.T) {
	_, err := Locate("https://www.disneyplus.com/browse/entity-7d3d2f5f-6a1c-4a2e-9b3e-5d6a3f2e1c0b")
	assert.ErrorIs(t, err, models.ErrEntityURL)
}

func TestLocateAmbiguousPatterns(t *testing.T) {
	locator := NewLocator([]ContentPattern{
		DefaultPatterns[0],
		{
			Expr:    regexp.MustCompile(`disneyplus\.com/.*/(?P<id>[a-zA-Z0-9]{12})$`),
			Variant: models.VariantDisney,
			Kind:    models.KindMovie,
		},
	})

	_, err := locator.Locate("https://www.disneyplus.com/movies/soul/77zlWrb9vRZp")
	assert.ErrorIs(t, err, models.ErrLocate)

	// Only the first pattern accepts a trailing slash
	ref, err := locator.Locate("https://www.disneyplus.com/movies/soul/77zlWrb9vRZp/")
	require.NoError(t, err)
	assert.Equal(t, "77zlWrb9vRZp", ref.ID)
}

func TestIsShortLink(t *testing.T) {
	assert.True(t, IsShortLink("https://dsny.pl/Loki"))
	assert.False(t, IsShortLink("https://dsny.pl/library/us/6pARMvILBGzF"))
	assert.False(t, IsShortLink("https://www.disneyplus.com/series/loki/6pARMvILBGzF"))
}
