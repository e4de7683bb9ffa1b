package models

// RawFilters holds the filter arguments as typed by the user
type RawFilters struct {
	Quality   string
	Audio     string
	Subtitles string
	Seasons   string
	Regions   string
	MetaLang  string
}

// LangSet is a set of canonical language tags. A nil LangSet means "no
// restriction" and is distinct from an empty, non-nil set.
type LangSet map[string]struct{}

// NewLangSet builds a set from already-canonical tags
func NewLangSet(langs ...string) LangSet {
	s := make(LangSet, len(langs))
	for _, l := range langs {
		s[l] = struct{}{}
	}
	return s
}

// SubsetOf reports whether every member of s appears in any of the given lists
func (s LangSet) SubsetOf(lists ...[]string) bool {
	have := make(map[string]struct{})
	for _, list := range lists {
		for _, l := range list {
			have[l] = struct{}{}
		}
	}
	for l := range s {
		if _, ok := have[l]; !ok {
			return false
		}
	}
	return true
}

// SeasonRange is a half-open interval [Start, End) of season numbers
type SeasonRange struct {
	Start int
	End   int
}

// Contains reports whether season n lies inside the range
func (r SeasonRange) Contains(n int) bool {
	return n >= r.Start && n < r.End
}

// FilterSpec is the normalized, immutable set of filters for one request
type FilterSpec struct {
	Quality       *Quality
	AudioLangs    LangSet
	SubtitleLangs LangSet
	Seasons       *SeasonRange
	Regions       []string
	MetaLang      string
}

// Advanced reports whether any language filter is active
func (f FilterSpec) Advanced() bool {
	return len(f.AudioLangs) > 0 || len(f.SubtitleLangs) > 0
}

// BothRequired reports whether audio and subtitle filters are both active
func (f FilterSpec) BothRequired() bool {
	return len(f.AudioLangs) > 0 && len(f.SubtitleLangs) > 0
}

// QualityMatches reports whether q satisfies the quality filter
func (f FilterSpec) QualityMatches(q Quality) bool {
	return f.Quality == nil || *f.Quality == q
}

// SeasonWanted reports whether season n passes the season range filter
func (f FilterSpec) SeasonWanted(n int) bool {
	return f.Seasons == nil || f.Seasons.Contains(n)
}

// TracksMatch applies the audio/subtitle predicate to a movie encoding.
// Subtitle requirements are satisfied by full or forced tracks.
func (f FilterSpec) TracksMatch(t Tracks) bool {
	if !f.Advanced() {
		return true
	}
	audioOK := len(f.AudioLangs) == 0 || f.AudioLangs.SubsetOf(t.Audio)
	subsOK := len(f.SubtitleLangs) == 0 || f.SubtitleLangs.SubsetOf(t.Subtitles, t.Forced)
	return audioOK && subsOK
}

// CountMatches counts, across a season's episodes, how many satisfy each
// language requirement independently. Without a requirement every episode
// counts as matching.
func (f FilterSpec) CountMatches(episodes []Tracks) MatchCounts {
	var m MatchCounts
	for _, ep := range episodes {
		if len(f.AudioLangs) == 0 || f.AudioLangs.SubsetOf(ep.Audio) {
			m.Audio++
		}
		if len(f.SubtitleLangs) == 0 || f.SubtitleLangs.SubsetOf(ep.Subtitles) {
			m.FullSubtitles++
		}
		if len(f.SubtitleLangs) == 0 || f.SubtitleLangs.SubsetOf(ep.Forced) {
			m.ForcedSubtitles++
		}
	}
	return m
}

// SeasonMatches reports whether a season signature has any episode that
// satisfies the active language filters
func (f FilterSpec) SeasonMatches(s SeasonSignature) bool {
	audioOK := len(f.AudioLangs) == 0 || s.Matches.Audio > 0
	subsOK := len(f.SubtitleLangs) == 0 || s.Matches.FullSubtitles > 0 || s.Matches.ForcedSubtitles > 0
	return s.EpisodeCount > 0 && audioOK && subsOK
}
