package models

import (
	"fmt"
	"strings"
)

// ContentKind represents the type of content (movie or series)
type ContentKind string

const (
	KindMovie  ContentKind = "movie"
	KindSeries ContentKind = "series"
)

// SiteVariant identifies which streaming service (and therefore which
// catalog and region list) a piece of content belongs to
type SiteVariant string

const (
	VariantDisney SiteVariant = "disney"
	VariantStar   SiteVariant = "star"
)

// Valid reports whether v is a known site variant
func (v SiteVariant) Valid() bool {
	return v == VariantDisney || v == VariantStar
}

// Host returns the public web host used for canonical links
func (v SiteVariant) Host() string {
	if v == VariantStar {
		return "www.starplus.com"
	}
	return "www.disneyplus.com"
}

// CatalogClient returns the registerdisney client id whose site
// configuration lists the variant's regions
func (v SiteVariant) CatalogClient() string {
	if v == VariantStar {
		return "ESPN-STARPLUS.GC.WEB-PROD"
	}
	return "DTCI-DISNEYPLUS.GC.WEB-PROD"
}

// ParseSiteVariant parses a variant name, defaulting to Disney+ when empty
func ParseSiteVariant(s string) (SiteVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(VariantDisney):
		return VariantDisney, nil
	case string(VariantStar):
		return VariantStar, nil
	}
	return "", fmt.Errorf("unknown site variant %q", s)
}

// Quality represents the video quality tier of an encoding
type Quality string

const (
	QualitySD  Quality = "SD"
	QualityHD  Quality = "HD"
	QualityUHD Quality = "UHD"
)

// ParseQuality parses a quality tier, case-insensitive
func ParseQuality(s string) (Quality, bool) {
	switch q := Quality(strings.ToUpper(strings.TrimSpace(s))); q {
	case QualitySD, QualityHD, QualityUHD:
		return q, true
	}
	return "", false
}

// Outcome is the terminal state of a sweep
type Outcome string

const (
	OutcomeCompleted   Outcome = "completed"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeFailed      Outcome = "failed"
	OutcomeCancelled   Outcome = "cancelled"
)

// RegionStatus describes what happened to a single region during a sweep
type RegionStatus string

const (
	RegionMatched   RegionStatus = "matched"   // Available and passes all filters
	RegionAvailable RegionStatus = "available" // Available but filtered out by audio/subtitle filters
	RegionSkipped   RegionStatus = "skipped"   // Available but quality/season filters removed it
	RegionAbsent    RegionStatus = "absent"    // Content not offered in the region
	RegionFailed    RegionStatus = "failed"    // Fetch or decode failed
)

// NotAvailableMessage is delivered when no region carries the content
const NotAvailableMessage = "Not available in any region."
