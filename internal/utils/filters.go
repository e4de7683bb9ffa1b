package utils

import (
	"strconv"
	"strings"

	"github.com/amaumene/dsnparr/internal/models"
)

// DefaultMetaLang is the metadata language used when none is requested
const DefaultMetaLang = "en"

// BuildFilterSpec normalizes the raw filter arguments of a check request.
// Absent or empty inputs yield "no restriction".
func BuildFilterSpec(raw models.RawFilters) (models.FilterSpec, error) {
	var spec models.FilterSpec

	if q := strings.TrimSpace(raw.Quality); q != "" {
		quality, ok := models.ParseQuality(q)
		if !ok {
			return models.FilterSpec{}, &models.InvalidFilterError{Field: "quality", Value: raw.Quality}
		}
		spec.Quality = &quality
	}

	spec.AudioLangs = parseLangSet(raw.Audio)
	spec.SubtitleLangs = parseLangSet(raw.Subtitles)

	if s := strings.TrimSpace(raw.Seasons); s != "" {
		seasons, err := ParseSeasonRange(s)
		if err != nil {
			return models.FilterSpec{}, err
		}
		spec.Seasons = &seasons
	}

	spec.Regions = parseRegions(raw.Regions)

	spec.MetaLang = NormalizeLanguage(raw.MetaLang)
	if spec.MetaLang == "" {
		spec.MetaLang = DefaultMetaLang
	}

	return spec, nil
}

// ParseSeasonRange parses "N" as [N, N+1) and "A-B" as [A, B+1)
func ParseSeasonRange(s string) (models.SeasonRange, error) {
	invalid := &models.InvalidFilterError{Field: "seasons", Value: s}

	start, end, isRange := strings.Cut(strings.TrimSpace(s), "-")
	first, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil || first < 0 {
		return models.SeasonRange{}, invalid
	}
	if !isRange {
		return models.SeasonRange{Start: first, End: first + 1}, nil
	}

	last, err := strconv.Atoi(strings.TrimSpace(end))
	if err != nil || last < first {
		return models.SeasonRange{}, invalid
	}
	return models.SeasonRange{Start: first, End: last + 1}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLangSet(s string) models.LangSet {
	langs := NormalizeLanguages(splitList(s))
	if len(langs) == 0 {
		return nil
	}
	return models.NewLangSet(langs...)
}

func parseRegions(s string) []string {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(parts))
	regions := make([]string, 0, len(parts))
	for _, p := range parts {
		r := strings.ToUpper(p)
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		regions = append(regions, r)
	}
	return regions
}
