package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/amaumene/dsnparr/internal/config"
	"github.com/amaumene/dsnparr/internal/metrics"
	"github.com/amaumene/dsnparr/internal/models"
	"github.com/amaumene/dsnparr/internal/tracing"
)

// MetadataSource answers per-region availability questions. Content that
// is not offered in a region is reported as models.ErrContentNotFound.
type MetadataSource interface {
	Movie(ctx context.Context, ref models.ContentRef, region, lang string) (*models.MovieDocument, error)
	Series(ctx context.Context, ref models.ContentRef, region, lang string) (*models.SeriesDocument, error)
	Episodes(ctx context.Context, ref models.ContentRef, region, lang, seasonID string) ([]models.Tracks, error)
}

// RegionSource provides the full region list of a site variant
type RegionSource interface {
	Regions(variant models.SiteVariant) []string
}

// Delivery receives each render that the throttle lets through. Every call
// replaces the previously delivered text.
type Delivery interface {
	Deliver(ctx context.Context, text string) error
}

// SweepResult is the outcome of one sweep
type SweepResult struct {
	Outcome    models.Outcome
	State      *models.AggregationState
	Outcomes   []models.RegionOutcome
	Deliveries int
	Report     string
}

// SweepController checks a piece of content region by region
type SweepController struct {
	source          MetadataSource
	regions         RegionSource
	regionTimeout   time.Duration
	seriesThreshold int
	movieThreshold  int
	tracer          trace.Tracer
	logger          *logrus.Logger
}

// NewSweepController creates a new sweep controller
func NewSweepController(cfg *config.Config, source MetadataSource, regions RegionSource, logger *logrus.Logger) *SweepController {
	return &SweepController{
		source:          source,
		regions:         regions,
		regionTimeout:   cfg.RegionTimeout,
		seriesThreshold: cfg.SeriesUpdateThreshold,
		movieThreshold:  cfg.MovieUpdateThreshold,
		tracer:          otel.Tracer(tracing.ServiceName),
		logger:          logger,
	}
}

// Run sweeps the regions of spec (or the whole catalog of the content's
// variant) one at a time, pushing renders to delivery as the throttle
// allows. When ctx ends the sweep stops before the next region and returns
// ctx.Err() along with the partial result; nothing more is delivered.
func (c *SweepController) Run(ctx context.Context, ref models.ContentRef, spec models.FilterSpec, delivery Delivery) (*SweepResult, error) {
	regions := spec.Regions
	if regions == nil {
		regions = c.regions.Regions(ref.Variant)
	}

	ctx, span := c.tracer.Start(ctx, "sweep", trace.WithAttributes(
		attribute.String("content.id", ref.ID),
		attribute.String("content.kind", string(ref.Kind)),
		attribute.String("content.variant", string(ref.Variant)),
		attribute.Int("regions", len(regions)),
	))
	defer span.End()

	state := models.NewAggregationState(len(regions))
	state.Kind = ref.Kind
	result := &SweepResult{
		State:    state,
		Outcomes: make([]models.RegionOutcome, 0, len(regions)),
	}
	policy := c.policyFor(ref.Kind)

	logger := c.logger.WithFields(logrus.Fields{
		"content_id": ref.ID,
		"kind":       ref.Kind,
		"variant":    ref.Variant,
	})
	logger.WithField("regions", len(regions)).Info("Starting region sweep")

	for i, region := range regions {
		if err := ctx.Err(); err != nil {
			return c.abort(result, span, logger, err)
		}

		outcome := c.checkRegion(ctx, ref, spec, region, state)
		if outcome.Status == models.RegionFailed && ctx.Err() != nil {
			return c.abort(result, span, logger, ctx.Err())
		}
		result.Outcomes = append(result.Outcomes, outcome)
		metrics.RegionsChecked.WithLabelValues(string(outcome.Status)).Inc()

		if outcome.Err != nil {
			logger.WithError(outcome.Err).WithField("region", region).Warn("Region check failed, skipping")
		}

		state.Advance()
		if err := c.pushProgress(ctx, policy, i == len(regions)-1, spec, delivery, result, logger); err != nil {
			return c.abort(result, span, logger, err)
		}
	}

	if len(state.AllAvailable) == 0 {
		result.Outcome = models.OutcomeUnavailable
		result.Report = models.NotAvailableMessage
	} else {
		result.Outcome = models.OutcomeCompleted
		result.Report = Render(state, spec)
	}
	if err := c.deliver(ctx, delivery, result.Report, result, logger); err != nil {
		return c.abort(result, span, logger, err)
	}

	metrics.SweepsTotal.WithLabelValues(string(ref.Kind), string(result.Outcome)).Inc()
	span.SetAttributes(
		attribute.String("outcome", string(result.Outcome)),
		attribute.Int("regions.available", len(state.AllAvailable)),
		attribute.Int("regions.matching", len(state.Matching)),
	)
	logger.WithFields(logrus.Fields{
		"outcome":    result.Outcome,
		"available":  len(state.AllAvailable),
		"matching":   len(state.Matching),
		"deliveries": result.Deliveries,
	}).Info("Region sweep finished")

	return result, nil
}

func (c *SweepController) abort(result *SweepResult, span trace.Span, logger *logrus.Entry, err error) (*SweepResult, error) {
	result.Outcome = models.OutcomeCancelled
	metrics.SweepsTotal.WithLabelValues(string(result.State.Kind), string(result.Outcome)).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	logger.WithError(err).WithField("checked", result.State.Checked).Warn("Region sweep aborted")
	return result, err
}

// pushProgress delivers the current render when the throttle allows it.
// The change counter drops to the baseline after every delivery decision,
// including one that found the render unchanged.
func (c *SweepController) pushProgress(ctx context.Context, policy ThrottlePolicy, isLast bool, spec models.FilterSpec, delivery Delivery, result *SweepResult, logger *logrus.Entry) error {
	state := result.State
	if !policy.ShouldDeliver(state.PendingChanges, isLast, state.HasAnyMatch()) {
		return nil
	}
	if err := c.deliver(ctx, delivery, Render(state, spec), result, logger); err != nil {
		return err
	}
	state.PendingChanges = postDeliveryBaseline
	return nil
}

// deliver pushes text unless it equals the last delivered text. Delivery
// failures are logged and do not stop the sweep; only a finished context
// is returned.
func (c *SweepController) deliver(ctx context.Context, delivery Delivery, text string, result *SweepResult, logger *logrus.Entry) error {
	state := result.State
	if text == state.LastDelivered {
		metrics.Deliveries.WithLabelValues("unchanged").Inc()
		return nil
	}

	if err := delivery.Deliver(ctx, text); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		metrics.Deliveries.WithLabelValues("failed").Inc()
		logger.WithError(err).Warn("Failed to deliver report")
		return nil
	}

	state.LastDelivered = text
	result.Deliveries++
	metrics.Deliveries.WithLabelValues("sent").Inc()
	return nil
}

// checkRegion fetches one region and records it into state. The state is
// only touched once every call for the region has succeeded, so a failed
// region leaves no trace besides its outcome.
func (c *SweepController) checkRegion(ctx context.Context, ref models.ContentRef, spec models.FilterSpec, region string, state *models.AggregationState) models.RegionOutcome {
	ctx, span := c.tracer.Start(ctx, "sweep.region", trace.WithAttributes(attribute.String("region", region)))
	defer span.End()

	if c.regionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.regionTimeout)
		defer cancel()
	}

	var outcome models.RegionOutcome
	if ref.Kind == models.KindSeries {
		outcome = c.checkSeries(ctx, ref, spec, region, state)
	} else {
		outcome = c.checkMovie(ctx, ref, spec, region, state)
	}

	span.SetAttributes(attribute.String("status", string(outcome.Status)))
	if outcome.Err != nil {
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, outcome.Err.Error())
	}
	return outcome
}

func (c *SweepController) checkMovie(ctx context.Context, ref models.ContentRef, spec models.FilterSpec, region string, state *models.AggregationState) models.RegionOutcome {
	doc, err := c.source.Movie(ctx, ref, region, spec.MetaLang)
	if err != nil {
		return failedOutcome(region, err)
	}

	state.MarkAvailable(region)
	state.SetHeader(doc.Title, ref.CanonicalURL(doc.Slug))

	if !spec.QualityMatches(doc.Quality) {
		return models.RegionOutcome{Region: region, Status: models.RegionSkipped}
	}
	if !spec.TracksMatch(doc.Tracks) {
		return models.RegionOutcome{Region: region, Status: models.RegionAvailable}
	}

	state.AddMatch(region)
	return models.RegionOutcome{Region: region, Status: models.RegionMatched}
}

func (c *SweepController) checkSeries(ctx context.Context, ref models.ContentRef, spec models.FilterSpec, region string, state *models.AggregationState) models.RegionOutcome {
	doc, err := c.source.Series(ctx, ref, region, spec.MetaLang)
	if err != nil {
		return failedOutcome(region, err)
	}

	var (
		seasons []models.SeasonSignature
		inRange int
	)
	for _, season := range doc.Seasons {
		if !spec.SeasonWanted(season.Number) {
			continue
		}
		inRange++

		episodes, err := c.source.Episodes(ctx, ref, region, spec.MetaLang, season.ID)
		if err != nil && !errors.Is(err, models.ErrContentNotFound) {
			return failedOutcome(region, err)
		}
		sig := models.SeasonSignature{
			Number:       season.Number,
			EpisodeCount: season.EpisodeCount,
			Matches:      spec.CountMatches(episodes),
		}
		if sig.EpisodeCount == 0 {
			sig.EpisodeCount = len(episodes)
		}

		if spec.SeasonMatches(sig) {
			seasons = append(seasons, sig)
		}
	}

	state.MarkAvailable(region)
	state.SetHeader(doc.Title, ref.CanonicalURL(doc.Slug))

	switch {
	case inRange == 0:
		return models.RegionOutcome{Region: region, Status: models.RegionSkipped}
	case len(seasons) == 0:
		return models.RegionOutcome{Region: region, Status: models.RegionAvailable}
	}

	state.AddSeries(region, seasons)
	return models.RegionOutcome{Region: region, Status: models.RegionMatched}
}

func failedOutcome(region string, err error) models.RegionOutcome {
	if errors.Is(err, models.ErrContentNotFound) {
		return models.RegionOutcome{Region: region, Status: models.RegionAbsent}
	}
	return models.RegionOutcome{
		Region: region,
		Status: models.RegionFailed,
		Err:    &models.RegionFetchError{Region: region, Err: err},
	}
}
