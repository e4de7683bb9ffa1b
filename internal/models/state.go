package models

import (
	"encoding/binary"
	"sort"
)

// MatchCounts holds how many episodes of a season satisfy each language
// requirement
type MatchCounts struct {
	Audio           int `json:"audio"`
	FullSubtitles   int `json:"full_subtitles"`
	ForcedSubtitles int `json:"forced_subtitles"`
}

// SeasonSignature is the per-region shape of one season. Two regions with
// equal signature lists present an identical release.
type SeasonSignature struct {
	Number       int         `json:"number"`
	EpisodeCount int         `json:"episode_count"`
	Matches      MatchCounts `json:"matches"`
}

// SignatureKey is the canonical, comparable form of an ordered signature list
type SignatureKey string

// KeyOf derives the grouping key of an ordered signature list. Every field
// is written as a fixed-width integer so distinct lists never collide.
func KeyOf(seasons []SeasonSignature) SignatureKey {
	buf := make([]byte, 0, len(seasons)*5*8)
	for _, s := range seasons {
		for _, v := range [...]int{s.Number, s.EpisodeCount, s.Matches.Audio, s.Matches.FullSubtitles, s.Matches.ForcedSubtitles} {
			buf = binary.BigEndian.AppendUint64(buf, uint64(int64(v)))
		}
	}
	return SignatureKey(buf)
}

// SeasonGroup is a bucket of regions sharing the same season signatures
type SeasonGroup struct {
	Regions       []string          `json:"regions"`
	Seasons       []SeasonSignature `json:"seasons"`
	TotalEpisodes int               `json:"total_episodes"`
}

// AggregationState is the running result of one sweep. It is owned by the
// goroutine running the sweep and is never shared between requests.
type AggregationState struct {
	Kind         ContentKind
	Title        string
	CanonicalURL string

	AllAvailable []string
	Matching     []string

	groups     []*SeasonGroup
	groupIndex map[SignatureKey]int

	Checked int
	Total   int

	PendingChanges int
	LastDelivered  string
}

// NewAggregationState creates an empty state for a sweep over total regions
func NewAggregationState(total int) *AggregationState {
	return &AggregationState{
		Total:      total,
		groupIndex: make(map[SignatureKey]int),
	}
}

// HasHeader reports whether the title header has been captured
func (s *AggregationState) HasHeader() bool {
	return s.Title != "" || s.CanonicalURL != ""
}

// SetHeader records the title and link of the first region that yields
// data. Later calls are ignored.
func (s *AggregationState) SetHeader(title, canonicalURL string) bool {
	if s.HasHeader() {
		return false
	}
	s.Title = title
	s.CanonicalURL = canonicalURL
	return true
}

// MarkAvailable records that the content exists in region
func (s *AggregationState) MarkAvailable(region string) {
	s.AllAvailable = append(s.AllAvailable, region)
}

// AddMatch records a region passing every filter
func (s *AggregationState) AddMatch(region string) {
	s.Matching = append(s.Matching, region)
	s.PendingChanges++
}

// AddSeries records a matching series region and files it into the bucket
// of its signature list
func (s *AggregationState) AddSeries(region string, seasons []SeasonSignature) {
	s.AddMatch(region)

	key := KeyOf(seasons)
	if i, ok := s.groupIndex[key]; ok {
		s.groups[i].Regions = append(s.groups[i].Regions, region)
		return
	}

	total := 0
	for _, season := range seasons {
		total += season.EpisodeCount
	}
	s.groupIndex[key] = len(s.groups)
	s.groups = append(s.groups, &SeasonGroup{
		Regions:       []string{region},
		Seasons:       append([]SeasonSignature(nil), seasons...),
		TotalEpisodes: total,
	})
}

// Advance marks one more region as checked
func (s *AggregationState) Advance() {
	s.Checked++
}

// Done reports whether every region has been checked
func (s *AggregationState) Done() bool {
	return s.Checked >= s.Total
}

// HasAnyMatch reports whether at least one region passed the filters
func (s *AggregationState) HasAnyMatch() bool {
	return len(s.Matching) > 0
}

// Groups returns the season buckets ordered by ascending total episode
// count, ties kept in insertion order
func (s *AggregationState) Groups() []SeasonGroup {
	out := make([]SeasonGroup, len(s.groups))
	for i, g := range s.groups {
		out[i] = *g
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalEpisodes < out[j].TotalEpisodes
	})
	return out
}
