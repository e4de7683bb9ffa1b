package disney

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/dsnparr/internal/config"
	"github.com/amaumene/dsnparr/internal/models"
)

const movieJSON = `{
  "data": {
    "DmcVideoBundle": {
      "video": {
        "text": {
          "title": {
            "full": {"program": {"default": {"content": "Star Wars: Attack of the Clones"}}},
            "slug": {"program": {"default": {"content": "star-wars-attack-of-the-clones-episode-ii"}}}
          }
        },
        "mediaMetadata": {
          "format": "UHD",
          "audioTracks": [{"language": "en"}, {"language": "pl"}, {"language": "EN"}],
          "captions": [
            {"language": "en", "trackType": "SDH"},
            {"language": "pl", "trackType": "NORMAL"},
            {"language": "fr", "trackType": "FORCED"}
          ]
        }
      }
    }
  }
}`

const seriesJSON = `{
  "data": {
    "DmcSeriesBundle": {
      "series": {
        "text": {
          "title": {
            "full": {"series": {"default": {"content": "Loki"}}},
            "slug": {"series": {"default": {"content": "loki"}}}
          }
        }
      },
      "seasons": {
        "seasons": [
          {"seasonId": "s1", "seasonSequenceNumber": 1, "episodes_meta": {"hits": 6}},
          {"seasonId": "s2", "seasonSequenceNumber": 2, "episodes_meta": {"hits": 6}}
        ]
      },
      "episodes": {"videos": []}
    }
  }
}`

const episodesJSON = `{
  "data": {
    "DmcEpisodes": {
      "videos": [
        {"episodeSequenceNumber": 1, "mediaMetadata": {"audioTracks": [{"language": "en"}], "captions": [{"language": "pl", "trackType": "NORMAL"}]}},
        {"episodeSequenceNumber": 2, "mediaMetadata": {"audioTracks": [{"language": "en"}], "captions": [{"language": "pl", "trackType": "FORCED"}]}}
      ]
    }
  }
}`

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewClient(&config.Config{
		DisneyContentURL: baseURL,
		StarContentURL:   baseURL + "/star",
		CatalogURL:       baseURL + "/jgc/%s/configuration/site",
		RetryAttempts:    2,
		CatalogTTL:       time.Hour,
	}, logger)
}

func TestMovie(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(movieJSON))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ref := models.ContentRef{ID: "mgpYHGnzZW6N", Kind: models.KindMovie, Variant: models.VariantDisney}

	doc, err := client.Movie(context.Background(), ref, "pl", "en")
	require.NoError(t, err)

	assert.Equal(t, "/svc/content/DmcVideoBundle/version/5.1/region/PL/audience/k-false,l-true/maturity/1899/language/en/encodedFamilyId/mgpYHGnzZW6N", path)
	assert.Equal(t, "Star Wars: Attack of the Clones", doc.Title)
	assert.Equal(t, "star-wars-attack-of-the-clones-episode-ii", doc.Slug)
	assert.Equal(t, models.QualityUHD, doc.Quality)
	assert.Equal(t, []string{"en", "pl"}, doc.Tracks.Audio)
	assert.Equal(t, []string{"en", "pl"}, doc.Tracks.Subtitles)
	assert.Equal(t, []string{"fr"}, doc.Tracks.Forced)
}

func TestMovieNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/region/US/") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"data": {"DmcVideoBundle": {"video": null}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ref := models.ContentRef{ID: "mgpYHGnzZW6N", Kind: models.KindMovie, Variant: models.VariantDisney}

	_, err := client.Movie(context.Background(), ref, "US", "en")
	assert.ErrorIs(t, err, models.ErrContentNotFound)

	_, err = client.Movie(context.Background(), ref, "FR", "en")
	assert.ErrorIs(t, err, models.ErrContentNotFound)
}

func TestSeriesAndEpisodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "DmcSeriesBundle"):
			w.Write([]byte(seriesJSON))
		case strings.HasSuffix(r.URL.Path, "/seasonId/s1/pageSize/-1/page/1"):
			w.Write([]byte(episodesJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ref := models.ContentRef{ID: "6pARMvILBGzF", Kind: models.KindSeries, Variant: models.VariantDisney}

	doc, err := client.Series(context.Background(), ref, "US", "en")
	require.NoError(t, err)
	assert.Equal(t, "Loki", doc.Title)
	assert.Equal(t, "loki", doc.Slug)
	assert.Equal(t, []models.SeasonInfo{
		{ID: "s1", Number: 1, EpisodeCount: 6},
		{ID: "s2", Number: 2, EpisodeCount: 6},
	}, doc.Seasons)

	episodes, err := client.Episodes(context.Background(), ref, "US", "en", "s1")
	require.NoError(t, err)
	require.Len(t, episodes, 2)
	assert.Equal(t, []string{"pl"}, episodes[0].Subtitles)
	assert.Empty(t, episodes[0].Forced)
	assert.Equal(t, []string{"pl"}, episodes[1].Forced)
}

func TestSeriesWithoutSeasonsIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"DmcSeriesBundle": {"seasons": {"seasons": []}}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ref := models.ContentRef{ID: "6pARMvILBGzF", Kind: models.KindSeries, Variant: models.VariantDisney}

	_, err := client.Series(context.Background(), ref, "US", "en")
	assert.ErrorIs(t, err, models.ErrContentNotFound)
}

func TestStarVariantUsesItsOwnHost(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(movieJSON))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ref := models.ContentRef{ID: "mgpYHGnzZW6N", Kind: models.KindMovie, Variant: models.VariantStar}

	_, err := client.Movie(context.Background(), ref, "BR", "pt-BR")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/star/svc/content/DmcVideoBundle/"), path)
	assert.Contains(t, path, "/language/pt-BR/")
}

func TestRetriesTransientFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(movieJSON))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ref := models.ContentRef{ID: "mgpYHGnzZW6N", Kind: models.KindMovie, Variant: models.VariantDisney}

	doc, err := client.Movie(context.Background(), ref, "US", "en")
	require.NoError(t, err)
	assert.Equal(t, models.QualityUHD, doc.Quality)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ref := models.ContentRef{ID: "mgpYHGnzZW6N", Kind: models.KindMovie, Variant: models.VariantDisney}

	_, err := client.Movie(context.Background(), ref, "US", "en")
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrContentNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": `))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ref := models.ContentRef{ID: "mgpYHGnzZW6N", Kind: models.KindMovie, Variant: models.VariantDisney}

	_, err := client.Movie(context.Background(), ref, "US", "en")
	assert.ErrorContains(t, err, "failed to decode response")
}

func TestResolveShortLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/Loki" {
			http.Redirect(w, r, "/series/loki/6pARMvILBGzF", http.StatusMovedPermanently)
			return
		}
		if r.URL.Path == "/broken" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	final, err := client.ResolveShortLink(context.Background(), server.URL+"/Loki")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/series/loki/6pARMvILBGzF", final)

	_, err = client.ResolveShortLink(context.Background(), server.URL+"/broken")
	assert.Error(t, err)
}
