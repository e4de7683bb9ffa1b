package disney

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/dsnparr/internal/config"
	"github.com/amaumene/dsnparr/internal/metrics"
	"github.com/amaumene/dsnparr/internal/models"
)

// siteConfiguration is the part of the registerdisney site configuration
// listing the service's countries
type siteConfiguration struct {
	Data struct {
		Compliance struct {
			Countries []string `json:"countries"`
		} `json:"compliance"`
	} `json:"data"`
}

// Catalog provides the region list of each site variant. Lists fetched from
// the remote site configuration are cached for the configured TTL; the
// compiled-in list is served otherwise.
type Catalog struct {
	client      *Client
	urlTemplate string
	ttl         time.Duration
	cache       *cache.Cache
	logger      *logrus.Logger
}

// NewCatalog creates a region catalog backed by the content client
func NewCatalog(cfg *config.Config, client *Client, logger *logrus.Logger) *Catalog {
	for _, v := range []models.SiteVariant{models.VariantDisney, models.VariantStar} {
		metrics.CatalogRegions.WithLabelValues(string(v)).Set(float64(len(fallbackRegions[v])))
	}
	return &Catalog{
		client:      client,
		urlTemplate: cfg.CatalogURL,
		ttl:         cfg.CatalogTTL,
		cache:       cache.New(cfg.CatalogTTL, 10*time.Minute),
		logger:      logger,
	}
}

// Regions returns the region list of variant. The returned slice is a
// private copy and safe to keep for the duration of a sweep.
func (c *Catalog) Regions(variant models.SiteVariant) []string {
	if cached, found := c.cache.Get(string(variant)); found {
		return append([]string(nil), cached.([]string)...)
	}
	return FallbackRegions(variant)
}

// Refresh fetches the region lists of every variant. A variant whose fetch
// fails keeps serving its previous list.
func (c *Catalog) Refresh(ctx context.Context) error {
	var failed []string
	for _, variant := range []models.SiteVariant{models.VariantDisney, models.VariantStar} {
		regions, err := c.fetch(ctx, variant)
		if err != nil {
			c.logger.WithError(err).WithField("variant", variant).Warn("Failed to refresh region catalog")
			failed = append(failed, string(variant))
			continue
		}

		c.cache.Set(string(variant), regions, c.ttl)
		metrics.CatalogRegions.WithLabelValues(string(variant)).Set(float64(len(regions)))
		c.logger.WithFields(logrus.Fields{
			"variant": variant,
			"count":   len(regions),
		}).Info("Region catalog refreshed")
	}

	if len(failed) > 0 {
		return fmt.Errorf("region catalog refresh failed for %s", strings.Join(failed, ", "))
	}
	return nil
}

func (c *Catalog) fetch(ctx context.Context, variant models.SiteVariant) ([]string, error) {
	fullURL := fmt.Sprintf(c.urlTemplate, variant.CatalogClient())

	var site siteConfiguration
	if err := c.client.getJSON(ctx, "site_configuration", fullURL, &site); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var regions []string
	for _, code := range site.Data.Compliance.Countries {
		code = strings.ToUpper(strings.TrimSpace(code))
		if len(code) != 2 {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		regions = append(regions, code)
	}
	if len(regions) == 0 {
		return nil, fmt.Errorf("site configuration lists no countries")
	}
	return regions, nil
}
