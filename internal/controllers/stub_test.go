package controllers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/dsnparr/internal/config"
	"github.com/amaumene/dsnparr/internal/models"
	"github.com/amaumene/dsnparr/internal/utils"
)

var errTransport = errors.New("connection reset by peer")

// stubSource serves canned documents and records every call
type stubSource struct {
	movies   map[string]*models.MovieDocument
	series   map[string]*models.SeriesDocument
	episodes map[string][]models.Tracks // region + "/" + season id
	failures map[string]error
	calls    []string
}

func newStubSource() *stubSource {
	return &stubSource{
		movies:   make(map[string]*models.MovieDocument),
		series:   make(map[string]*models.SeriesDocument),
		episodes: make(map[string][]models.Tracks),
		failures: make(map[string]error),
	}
}

func (s *stubSource) Movie(ctx context.Context, ref models.ContentRef, region, lang string) (*models.MovieDocument, error) {
	s.calls = append(s.calls, "movie:"+region)
	if err := s.failures[region]; err != nil {
		return nil, err
	}
	if doc, ok := s.movies[region]; ok {
		return doc, nil
	}
	return nil, models.ErrContentNotFound
}

func (s *stubSource) Series(ctx context.Context, ref models.ContentRef, region, lang string) (*models.SeriesDocument, error) {
	s.calls = append(s.calls, "series:"+region)
	if err := s.failures[region]; err != nil {
		return nil, err
	}
	if doc, ok := s.series[region]; ok {
		return doc, nil
	}
	return nil, models.ErrContentNotFound
}

func (s *stubSource) Episodes(ctx context.Context, ref models.ContentRef, region, lang, seasonID string) ([]models.Tracks, error) {
	s.calls = append(s.calls, "episodes:"+region+"/"+seasonID)
	if eps, ok := s.episodes[region+"/"+seasonID]; ok {
		return eps, nil
	}
	return nil, models.ErrContentNotFound
}

type stubRegions []string

func (r stubRegions) Regions(models.SiteVariant) []string {
	return append([]string(nil), r...)
}

type stubResolver struct {
	target string
	err    error
	calls  int
}

func (r *stubResolver) ResolveShortLink(ctx context.Context, url string) (string, error) {
	r.calls++
	return r.target, r.err
}

func testConfig() *config.Config {
	return &config.Config{
		RegionTimeout:         time.Second,
		SweepTimeout:          time.Minute,
		SeriesUpdateThreshold: 6,
		MovieUpdateThreshold:  11,
	}
}

func newTestSweep(cfg *config.Config, source MetadataSource, regions RegionSource) *SweepController {
	logger, _ := test.NewNullLogger()
	return NewSweepController(cfg, source, regions, logger)
}

func newTestCheck(cfg *config.Config, source MetadataSource, regions RegionSource, resolver ShortLinkResolver) *CheckController {
	logger, _ := test.NewNullLogger()
	return NewCheckController(cfg, NewSweepController(cfg, source, regions, logger), resolver, regions, logger)
}

func movieDoc(quality models.Quality, audio, subs, forced []string) *models.MovieDocument {
	return &models.MovieDocument{
		Title:   "Soul",
		Slug:    "soul",
		Quality: quality,
		Tracks:  models.Tracks{Audio: audio, Subtitles: subs, Forced: forced},
	}
}

func seriesDoc(seasons ...models.SeasonInfo) *models.SeriesDocument {
	return &models.SeriesDocument{Title: "Loki", Slug: "loki", Seasons: seasons}
}

func tracks(n int, audio, subs, forced []string) []models.Tracks {
	out := make([]models.Tracks, n)
	for i := range out {
		out[i] = models.Tracks{Audio: audio, Subtitles: subs, Forced: forced}
	}
	return out
}

var (
	movieRef  = models.ContentRef{ID: "77zlWrb9vRZp", Kind: models.KindMovie, Variant: models.VariantDisney}
	seriesRef = models.ContentRef{ID: "6pARMvILBGzF", Kind: models.KindSeries, Variant: models.VariantDisney}
)

func mustSpec(t *testing.T, raw models.RawFilters) models.FilterSpec {
	t.Helper()
	spec, err := utils.BuildFilterSpec(raw)
	require.NoError(t, err)
	return spec
}
