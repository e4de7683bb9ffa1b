package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amaumene/dsnparr/internal/models"
)

func TestThrottlePolicy(t *testing.T) {
	policy := ThrottlePolicy{Threshold: 6}

	var delivered []int
	for counter := 1; counter <= 7; counter++ {
		if policy.ShouldDeliver(counter, false, true) {
			delivered = append(delivered, counter)
		}
	}
	assert.Equal(t, []int{1, 7}, delivered)

	assert.True(t, policy.ShouldDeliver(postDeliveryBaseline, true, true))
	assert.False(t, policy.ShouldDeliver(postDeliveryBaseline, false, true))
	assert.False(t, policy.ShouldDeliver(1, true, false))
}

func TestRenderProgressBanner(t *testing.T) {
	state := models.NewAggregationState(137)
	state.Kind = models.KindMovie
	state.SetHeader("Tom & Jerry <Special>", "https://www.disneyplus.com/movies/tom-and-jerry/77zlWrb9vRZp")
	for _, region := range []string{"US", "PL"} {
		state.MarkAvailable(region)
		state.AddMatch(region)
		state.Advance()
	}

	report := Render(state, models.FilterSpec{})
	assert.Equal(t, `<a href="https://www.disneyplus.com/movies/tom-and-jerry/77zlWrb9vRZp">Tom &amp; Jerry &lt;Special&gt;</a>
<i>Checking regions... 2/137 (1%)</i>
Available in 2 regions

<code>US, PL</code>`, report)

	state.Checked = state.Total
	assert.Contains(t, Render(state, models.FilterSpec{}), "<i>Checked all 137 regions</i>")
}

func TestRenderCompletionBannerSingleRegion(t *testing.T) {
	state := models.NewAggregationState(1)
	state.Kind = models.KindMovie
	state.MarkAvailable("PL")
	state.AddMatch("PL")
	state.Advance()

	report := Render(state, models.FilterSpec{})
	assert.Contains(t, report, "<i>Checked 1 region</i>")
	assert.NotContains(t, report, "Checked all")
}

func TestRenderIsPure(t *testing.T) {
	state := models.NewAggregationState(2)
	state.Kind = models.KindSeries
	state.SetHeader("Loki", "https://www.disneyplus.com/series/loki/6pARMvILBGzF")
	state.MarkAvailable("US")
	state.AddSeries("US", []models.SeasonSignature{{Number: 1, EpisodeCount: 6}})
	state.Advance()

	before := *state
	first := Render(state, models.FilterSpec{})
	second := Render(state, models.FilterSpec{})

	assert.Equal(t, first, second)
	assert.Equal(t, before.PendingChanges, state.PendingChanges)
	assert.Equal(t, before.LastDelivered, state.LastDelivered)
}

func TestSeasonSummary(t *testing.T) {
	sig := models.SeasonSignature{
		Number:       1,
		EpisodeCount: 8,
		Matches:      models.MatchCounts{Audio: 7, FullSubtitles: 5, ForcedSubtitles: 2},
	}

	tests := []struct {
		name string
		spec models.FilterSpec
		want string
	}{
		{"no language filter", models.FilterSpec{}, "8"},
		{"audio only", models.FilterSpec{AudioLangs: models.NewLangSet("en")}, "7/8"},
		{"subtitles only", models.FilterSpec{SubtitleLangs: models.NewLangSet("en")}, "5/8 — full, 2/8 — forced"},
		{"both", models.FilterSpec{AudioLangs: models.NewLangSet("en"), SubtitleLangs: models.NewLangSet("pl")}, "7/8 — audio, 5/8 — full, 2/8 — forced"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, seasonSummary(sig, tt.spec))
		})
	}

	sig.Matches.ForcedSubtitles = 0
	assert.Equal(t, "5/8 — full", seasonSummary(sig, models.FilterSpec{SubtitleLangs: models.NewLangSet("en")}))
}
