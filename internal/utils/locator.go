package utils

import (
	"regexp"
	"strings"

	"github.com/amaumene/dsnparr/internal/models"
)

// ContentPattern is one known URL shape. The expression must capture an
// "id" group and may capture a "type" group ("movies" or "series"); Kind is
// used when it does not.
type ContentPattern struct {
	Expr    *regexp.Regexp
	Variant models.SiteVariant
	Kind    models.ContentKind
}

// DefaultPatterns are the URL shapes accepted by Locate
var DefaultPatterns = []ContentPattern{
	{
		Expr:    regexp.MustCompile(`^https?://(?:www\.)?(?:preview\.)?disneyplus\.com(?:/[a-z0-9-]+){0,2}/(?P<type>movies|series)(?:/[a-zA-Z0-9%_-]+)?/(?P<id>[a-zA-Z0-9]{12})(?:[/?#]|$)`),
		Variant: models.VariantDisney,
	},
	{
		Expr:    regexp.MustCompile(`^https?://(?:www\.)?starplus\.com(?:/[a-z0-9-]+){0,2}/(?P<type>movies|series)(?:/[a-zA-Z0-9%_-]+)?/(?P<id>[a-zA-Z0-9]{12})(?:[/?#]|$)`),
		Variant: models.VariantStar,
	},
	{
		// Library short links carry no content type
		Expr:    regexp.MustCompile(`^https?://(?:www\.)?dsny\.pl/library/[a-zA-Z]{2}(?:/[a-zA-Z]{2})?/(?P<id>[a-zA-Z0-9]{12})(?:[/?#]|$)`),
		Variant: models.VariantDisney,
		Kind:    models.KindSeries,
	},
}

// Locator resolves content URLs against an ordered list of patterns
type Locator struct {
	patterns []ContentPattern
}

// NewLocator creates a locator over the given patterns
func NewLocator(patterns []ContentPattern) *Locator {
	return &Locator{patterns: patterns}
}

var defaultLocator = NewLocator(DefaultPatterns)

// Locate resolves url with the default patterns
func Locate(url string) (models.ContentRef, error) {
	return defaultLocator.Locate(url)
}

// Locate returns the content reference when exactly one pattern matches.
// No match, or more than one, is reported as models.ErrLocate.
func (l *Locator) Locate(url string) (models.ContentRef, error) {
	url = strings.TrimSpace(url)
	if strings.Contains(url, "browse/entity") {
		return models.ContentRef{}, models.ErrEntityURL
	}

	var ref models.ContentRef
	matched := 0
	for _, p := range l.patterns {
		m := p.Expr.FindStringSubmatch(url)
		if m == nil {
			continue
		}
		matched++
		if matched > 1 {
			return models.ContentRef{}, models.ErrLocate
		}

		ref = models.ContentRef{Variant: p.Variant, Kind: p.Kind}
		if ref.Kind == "" {
			ref.Kind = models.KindMovie
		}
		for i, name := range p.Expr.SubexpNames() {
			switch name {
			case "id":
				ref.ID = m[i]
			case "type":
				if m[i] == "series" {
					ref.Kind = models.KindSeries
				} else if m[i] == "movies" {
					ref.Kind = models.KindMovie
				}
			}
		}
	}

	if matched == 0 || ref.ID == "" {
		return models.ContentRef{}, models.ErrLocate
	}
	return ref, nil
}

var shortLinkExpr = regexp.MustCompile(`^https?://(?:www\.)?dsny\.pl/`)

// IsShortLink reports whether url is a short link that has to be resolved
// by following its redirects before it can be located
func IsShortLink(url string) bool {
	url = strings.TrimSpace(url)
	return shortLinkExpr.MatchString(url) && !strings.Contains(url, "/library/")
}
