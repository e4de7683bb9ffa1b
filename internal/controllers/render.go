package controllers

import (
	"fmt"
	"html"
	"strings"

	"github.com/amaumene/dsnparr/internal/models"
)

// Render formats the state as an HTML report. It never mutates state.
func Render(state *models.AggregationState, spec models.FilterSpec) string {
	var b strings.Builder

	if state.HasHeader() {
		title := state.Title
		if title == "" {
			title = state.CanonicalURL
		}
		fmt.Fprintf(&b, "<a href=\"%s\">%s</a>\n", html.EscapeString(state.CanonicalURL), html.EscapeString(title))
	}
	b.WriteString(progressBanner(state))
	b.WriteString("\n")

	if state.Kind == models.KindMovie && (spec.Advanced() || spec.Quality != nil) {
		fmt.Fprintf(&b, "Available in %d of %d regions\n\n", len(state.Matching), len(state.AllAvailable))
	} else {
		fmt.Fprintf(&b, "Available in %d regions\n\n", len(state.Matching))
	}

	if state.Kind == models.KindSeries {
		groups := state.Groups()
		lines := make([]string, 0, len(groups))
		for _, g := range groups {
			seasons := make([]string, 0, len(g.Seasons))
			for _, s := range g.Seasons {
				seasons = append(seasons, fmt.Sprintf("<b>%d</b> (%s)", s.Number, seasonSummary(s, spec)))
			}
			lines = append(lines, fmt.Sprintf("<code>%s</code>  –  %s", strings.Join(g.Regions, ", "), strings.Join(seasons, ",  ")))
		}
		b.WriteString(strings.Join(lines, "\n"))
	} else if len(state.Matching) > 0 {
		fmt.Fprintf(&b, "<code>%s</code>", strings.Join(state.Matching, ", "))
	}

	return strings.TrimRight(b.String(), "\n")
}

func progressBanner(state *models.AggregationState) string {
	if state.Done() {
		if state.Total == 1 {
			return "<i>Checked 1 region</i>"
		}
		return fmt.Sprintf("<i>Checked all %d regions</i>", state.Total)
	}
	percent := 0
	if state.Total > 0 {
		percent = state.Checked * 100 / state.Total
	}
	return fmt.Sprintf("<i>Checking regions... %d/%d (%d%%)</i>", state.Checked, state.Total, percent)
}

// seasonSummary shows the raw episode count without language filters,
// otherwise the per-requirement match counts
func seasonSummary(s models.SeasonSignature, spec models.FilterSpec) string {
	audio := len(spec.AudioLangs) > 0
	subs := len(spec.SubtitleLangs) > 0

	switch {
	case audio && subs:
		return fmt.Sprintf("%d/%d — audio, %d/%d — full, %d/%d — forced",
			s.Matches.Audio, s.EpisodeCount,
			s.Matches.FullSubtitles, s.EpisodeCount,
			s.Matches.ForcedSubtitles, s.EpisodeCount)
	case audio:
		return fmt.Sprintf("%d/%d", s.Matches.Audio, s.EpisodeCount)
	case subs:
		summary := fmt.Sprintf("%d/%d — full", s.Matches.FullSubtitles, s.EpisodeCount)
		if s.Matches.ForcedSubtitles > 0 {
			summary += fmt.Sprintf(", %d/%d — forced", s.Matches.ForcedSubtitles, s.EpisodeCount)
		}
		return summary
	default:
		return fmt.Sprintf("%d", s.EpisodeCount)
	}
}
