package disney

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/amaumene/dsnparr/internal/models"
	"github.com/amaumene/dsnparr/internal/utils"
)

const (
	contentVersion = "5.1"
	audience       = "k-false,l-true"
	maturity       = "1899"
)

// textValue is the {"default": {"content": ...}} wrapper used by every
// localized string in the content API
type textValue struct {
	Default struct {
		Content string `json:"content"`
	} `json:"default"`
}

// titled is the common "text.title" block of videos and series
type titled struct {
	Text struct {
		Title struct {
			Full map[string]textValue `json:"full"`
			Slug map[string]textValue `json:"slug"`
		} `json:"title"`
	} `json:"text"`
}

func (t titled) title(field string) string {
	return t.Text.Title.Full[field].Default.Content
}

func (t titled) slug(field string) string {
	return t.Text.Title.Slug[field].Default.Content
}

// Track is an audio or caption track of an encoding
type Track struct {
	Language  string `json:"language"`
	TrackType string `json:"trackType"` // NORMAL, SDH, FORCED for captions
}

// MediaMetadata describes the encoding of a video
type MediaMetadata struct {
	Format      string  `json:"format"`
	AudioTracks []Track `json:"audioTracks"`
	Captions    []Track `json:"captions"`
}

// Video is a movie or episode entry
type Video struct {
	titled
	EpisodeSequenceNumber int           `json:"episodeSequenceNumber"`
	MediaMetadata         MediaMetadata `json:"mediaMetadata"`
}

// Season is a season entry of a series bundle
type Season struct {
	SeasonID             string `json:"seasonId"`
	SeasonSequenceNumber int    `json:"seasonSequenceNumber"`
	EpisodesMeta         struct {
		Hits int `json:"hits"`
	} `json:"episodes_meta"`
}

// VideoBundleResponse is the DmcVideoBundle document
type VideoBundleResponse struct {
	Data struct {
		DmcVideoBundle struct {
			Video *Video `json:"video"`
		} `json:"DmcVideoBundle"`
	} `json:"data"`
}

// SeriesBundleResponse is the DmcSeriesBundle document
type SeriesBundleResponse struct {
	Data struct {
		DmcSeriesBundle struct {
			Series  *titled `json:"series"`
			Seasons struct {
				Seasons []Season `json:"seasons"`
			} `json:"seasons"`
			Episodes struct {
				Videos []Video `json:"videos"`
			} `json:"episodes"`
		} `json:"DmcSeriesBundle"`
	} `json:"data"`
}

// EpisodesResponse is the DmcEpisodes document
type EpisodesResponse struct {
	Data struct {
		DmcEpisodes struct {
			Videos []Video `json:"videos"`
		} `json:"DmcEpisodes"`
	} `json:"data"`
}

// tracks splits the encoding's tracks into audio, full and forced
// subtitle languages
func (m MediaMetadata) tracks() models.Tracks {
	var t models.Tracks
	for _, a := range m.AudioTracks {
		t.Audio = appendLang(t.Audio, a.Language)
	}
	for _, c := range m.Captions {
		if strings.EqualFold(c.TrackType, "FORCED") {
			t.Forced = appendLang(t.Forced, c.Language)
		} else {
			t.Subtitles = appendLang(t.Subtitles, c.Language)
		}
	}
	return t
}

func appendLang(list []string, code string) []string {
	code = utils.NormalizeLanguage(code)
	if code == "" {
		return list
	}
	for _, l := range list {
		if l == code {
			return list
		}
	}
	return append(list, code)
}

// contentPath builds a versioned content API path
func (c *Client) contentPath(variant models.SiteVariant, doc, region, lang string, tail ...string) (string, error) {
	base, err := c.baseURL(variant)
	if err != nil {
		return "", err
	}
	if lang == "" {
		lang = utils.DefaultMetaLang
	}
	parts := []string{
		strings.TrimRight(base, "/"), "svc", "content", doc,
		"version", contentVersion,
		"region", url.PathEscape(strings.ToUpper(region)),
		"audience", audience,
		"maturity", maturity,
		"language", url.PathEscape(lang),
	}
	for _, t := range tail {
		parts = append(parts, url.PathEscape(t))
	}
	return strings.Join(parts, "/"), nil
}

// Movie returns the availability document of a movie in region
func (c *Client) Movie(ctx context.Context, ref models.ContentRef, region, lang string) (*models.MovieDocument, error) {
	fullURL, err := c.contentPath(ref.Variant, "DmcVideoBundle", region, lang, "encodedFamilyId", ref.ID)
	if err != nil {
		return nil, err
	}

	var resp VideoBundleResponse
	if err := c.getJSON(ctx, "video_bundle", fullURL, &resp); err != nil {
		return nil, err
	}

	video := resp.Data.DmcVideoBundle.Video
	if video == nil {
		return nil, models.ErrContentNotFound
	}

	quality, ok := models.ParseQuality(video.MediaMetadata.Format)
	if !ok {
		quality = models.Quality(strings.ToUpper(video.MediaMetadata.Format))
	}

	return &models.MovieDocument{
		Title:   video.title("program"),
		Slug:    video.slug("program"),
		Quality: quality,
		Tracks:  video.MediaMetadata.tracks(),
	}, nil
}

// Series returns the availability document of a series in region
func (c *Client) Series(ctx context.Context, ref models.ContentRef, region, lang string) (*models.SeriesDocument, error) {
	fullURL, err := c.contentPath(ref.Variant, "DmcSeriesBundle", region, lang, "encodedSeriesId", ref.ID)
	if err != nil {
		return nil, err
	}

	var resp SeriesBundleResponse
	if err := c.getJSON(ctx, "series_bundle", fullURL, &resp); err != nil {
		return nil, err
	}

	bundle := resp.Data.DmcSeriesBundle
	if len(bundle.Seasons.Seasons) == 0 {
		return nil, models.ErrContentNotFound
	}

	doc := &models.SeriesDocument{}
	switch {
	case bundle.Series != nil && bundle.Series.title("series") != "":
		doc.Title = bundle.Series.title("series")
		doc.Slug = bundle.Series.slug("series")
	case len(bundle.Episodes.Videos) > 0:
		doc.Title = bundle.Episodes.Videos[0].title("series")
		doc.Slug = bundle.Episodes.Videos[0].slug("series")
	}

	for _, s := range bundle.Seasons.Seasons {
		doc.Seasons = append(doc.Seasons, models.SeasonInfo{
			ID:           s.SeasonID,
			Number:       s.SeasonSequenceNumber,
			EpisodeCount: s.EpisodesMeta.Hits,
		})
	}
	return doc, nil
}

// Episodes returns the track languages of every episode of a season
func (c *Client) Episodes(ctx context.Context, ref models.ContentRef, region, lang, seasonID string) ([]models.Tracks, error) {
	if seasonID == "" {
		return nil, fmt.Errorf("season id is required")
	}
	fullURL, err := c.contentPath(ref.Variant, "DmcEpisodes", region, lang, "seasonId", seasonID, "pageSize", "-1", "page", "1")
	if err != nil {
		return nil, err
	}

	var resp EpisodesResponse
	if err := c.getJSON(ctx, "episodes", fullURL, &resp); err != nil {
		return nil, err
	}

	episodes := make([]models.Tracks, 0, len(resp.Data.DmcEpisodes.Videos))
	for _, v := range resp.Data.DmcEpisodes.Videos {
		episodes = append(episodes, v.MediaMetadata.tracks())
	}
	return episodes, nil
}
