package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sig(number, episodes, audio, full, forced int) SeasonSignature {
	return SeasonSignature{
		Number:       number,
		EpisodeCount: episodes,
		Matches:      MatchCounts{Audio: audio, FullSubtitles: full, ForcedSubtitles: forced},
	}
}

func TestKeyOf(t *testing.T) {
	a := []SeasonSignature{sig(1, 10, 10, 8, 0), sig(2, 8, 8, 8, 1)}
	b := []SeasonSignature{sig(1, 10, 10, 8, 0), sig(2, 8, 8, 8, 1)}
	assert.Equal(t, KeyOf(a), KeyOf(b))

	// Same numbers, different match counts
	c := []SeasonSignature{sig(1, 10, 10, 8, 0), sig(2, 8, 8, 7, 1)}
	assert.NotEqual(t, KeyOf(a), KeyOf(c))

	// Order of seasons matters
	d := []SeasonSignature{sig(2, 8, 8, 8, 1), sig(1, 10, 10, 8, 0)}
	assert.NotEqual(t, KeyOf(a), KeyOf(d))

	// Concatenation ambiguity that naive string joins run into
	e := []SeasonSignature{sig(1, 11, 0, 0, 0)}
	f := []SeasonSignature{sig(11, 1, 0, 0, 0)}
	assert.NotEqual(t, KeyOf(e), KeyOf(f))
}

func TestAddSeriesGroupsIdenticalSignatures(t *testing.T) {
	full := []SeasonSignature{sig(1, 10, 10, 10, 10), sig(2, 12, 12, 12, 12)}
	partial := []SeasonSignature{sig(1, 10, 10, 10, 10)}

	orders := [][]string{{"US", "PL", "GB"}, {"GB", "US", "PL"}, {"PL", "GB", "US"}}
	for _, order := range orders {
		state := NewAggregationState(len(order))
		for _, region := range order {
			if region == "PL" {
				state.AddSeries(region, partial)
			} else {
				state.AddSeries(region, full)
			}
		}

		groups := state.Groups()
		require.Len(t, groups, 2)
		assert.Equal(t, []string{"PL"}, groups[0].Regions)
		assert.Equal(t, 10, groups[0].TotalEpisodes)
		assert.ElementsMatch(t, []string{"US", "GB"}, groups[1].Regions)
		assert.Equal(t, 22, groups[1].TotalEpisodes)
	}
}

func TestGroupsOrderAscendingWithStableTies(t *testing.T) {
	state := NewAggregationState(4)
	state.AddSeries("US", []SeasonSignature{sig(1, 20, 20, 0, 0)})
	state.AddSeries("FR", []SeasonSignature{sig(1, 5, 5, 0, 0)})
	state.AddSeries("DE", []SeasonSignature{sig(2, 5, 5, 0, 0)})
	state.AddSeries("JP", []SeasonSignature{sig(1, 8, 8, 0, 0)})

	groups := state.Groups()
	require.Len(t, groups, 4)
	assert.Equal(t, []string{"FR"}, groups[0].Regions)
	assert.Equal(t, []string{"DE"}, groups[1].Regions)
	assert.Equal(t, []string{"JP"}, groups[2].Regions)
	assert.Equal(t, []string{"US"}, groups[3].Regions)
}

func TestAddSeriesCopiesSeasons(t *testing.T) {
	state := NewAggregationState(1)
	seasons := []SeasonSignature{sig(1, 3, 3, 3, 3)}
	state.AddSeries("US", seasons)
	seasons[0].EpisodeCount = 99

	assert.Equal(t, 3, state.Groups()[0].Seasons[0].EpisodeCount)
}

func TestSetHeaderFirstWriterWins(t *testing.T) {
	state := NewAggregationState(2)
	assert.False(t, state.HasHeader())
	assert.True(t, state.SetHeader("Loki", "https://www.disneyplus.com/series/loki/6pARMvILBGzF"))
	assert.False(t, state.SetHeader("Loki (Extended)", "https://example.com"))
	assert.Equal(t, "Loki", state.Title)
	assert.Equal(t, "https://www.disneyplus.com/series/loki/6pARMvILBGzF", state.CanonicalURL)
}

func TestProgressAndChanges(t *testing.T) {
	state := NewAggregationState(2)
	state.MarkAvailable("US")
	assert.False(t, state.HasAnyMatch())
	assert.Equal(t, 0, state.PendingChanges)

	state.AddMatch("US")
	state.Advance()
	assert.True(t, state.HasAnyMatch())
	assert.Equal(t, 1, state.PendingChanges)
	assert.False(t, state.Done())

	state.Advance()
	assert.True(t, state.Done())
}
