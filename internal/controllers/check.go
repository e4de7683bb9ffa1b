package controllers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amaumene/dsnparr/internal/config"
	"github.com/amaumene/dsnparr/internal/metrics"
	"github.com/amaumene/dsnparr/internal/models"
	"github.com/amaumene/dsnparr/internal/utils"
)

// ShortLinkResolver follows a short link to the URL it points at
type ShortLinkResolver interface {
	ResolveShortLink(ctx context.Context, url string) (string, error)
}

// CheckRequest is a validated check, ready to sweep
type CheckRequest struct {
	URL  string
	Ref  models.ContentRef
	Spec models.FilterSpec
}

// CheckController turns a user request into a sweep
type CheckController struct {
	sweep        *SweepController
	resolver     ShortLinkResolver
	regions      RegionSource
	sweepTimeout time.Duration
	logger       *logrus.Logger
}

// NewCheckController creates a new check controller
func NewCheckController(cfg *config.Config, sweep *SweepController, resolver ShortLinkResolver, regions RegionSource, logger *logrus.Logger) *CheckController {
	return &CheckController{
		sweep:        sweep,
		resolver:     resolver,
		regions:      regions,
		sweepTimeout: cfg.SweepTimeout,
		logger:       logger,
	}
}

// Prepare validates the filters, resolves short links and locates the
// content. Filters are checked before anything touches the network.
func (c *CheckController) Prepare(ctx context.Context, url string, raw models.RawFilters) (*CheckRequest, error) {
	spec, err := utils.BuildFilterSpec(raw)
	if err != nil {
		return nil, err
	}

	if utils.IsShortLink(url) {
		resolved, err := c.resolver.ResolveShortLink(ctx, url)
		if err != nil {
			return nil, &models.RedirectError{URL: url, Err: err}
		}
		c.logger.WithFields(logrus.Fields{
			"url":      url,
			"resolved": resolved,
		}).Debug("Short link resolved")
		url = resolved
	}

	ref, err := utils.Locate(url)
	if err != nil {
		return nil, err
	}

	if spec.Regions != nil {
		known := c.regions.Regions(ref.Variant)
		if unknown := utils.UnknownRegions(spec.Regions, known); len(unknown) > 0 {
			return nil, &models.InvalidFilterError{
				Field:      "region",
				Value:      unknown[0],
				Suggestion: utils.SuggestRegion(unknown[0], known),
			}
		}
	}

	return &CheckRequest{URL: url, Ref: ref, Spec: spec}, nil
}

// Sweep runs the sweep of a prepared request, bounded by the sweep timeout
func (c *CheckController) Sweep(ctx context.Context, req *CheckRequest, delivery Delivery) (*SweepResult, error) {
	if c.sweepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.sweepTimeout)
		defer cancel()
	}
	return c.sweep.Run(ctx, req.Ref, req.Spec, delivery)
}

// Check prepares and sweeps a request. Request-level failures are returned
// before any metadata call is made.
func (c *CheckController) Check(ctx context.Context, url string, raw models.RawFilters, delivery Delivery) (*SweepResult, error) {
	req, err := c.Prepare(ctx, url, raw)
	if err != nil {
		metrics.SweepsTotal.WithLabelValues("unknown", string(models.OutcomeFailed)).Inc()
		c.logger.WithError(err).WithField("url", url).Info("Check request rejected")
		return nil, err
	}
	return c.Sweep(ctx, req, delivery)
}
