package models

import "fmt"

// ContentRef identifies a title in a service catalog
type ContentRef struct {
	ID      string
	Kind    ContentKind
	Variant SiteVariant
}

// CanonicalURL returns the public link to the title for the given slug
func (r ContentRef) CanonicalURL(slug string) string {
	section := "movies"
	if r.Kind == KindSeries {
		section = "series"
	}
	if slug == "" {
		return fmt.Sprintf("https://%s/%s/%s", r.Variant.Host(), section, r.ID)
	}
	return fmt.Sprintf("https://%s/%s/%s/%s", r.Variant.Host(), section, slug, r.ID)
}

// Tracks holds the language codes of an encoding's audio and subtitle
// tracks, with forced subtitles kept apart from full ones
type Tracks struct {
	Audio     []string
	Subtitles []string
	Forced    []string
}

// MovieDocument is the per-region availability document of a movie
type MovieDocument struct {
	Title   string
	Slug    string
	Quality Quality
	Tracks  Tracks
}

// SeasonInfo describes one season of a series as listed in a region
type SeasonInfo struct {
	ID           string
	Number       int
	EpisodeCount int
}

// SeriesDocument is the per-region availability document of a series
type SeriesDocument struct {
	Title   string
	Slug    string
	Seasons []SeasonInfo
}

// RegionOutcome records how a region was handled during a sweep
type RegionOutcome struct {
	Region string       `json:"region"`
	Status RegionStatus `json:"status"`
	Err    error        `json:"-"`
}
