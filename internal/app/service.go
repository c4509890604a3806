// Package service runs the rental-yield analysis pipeline: load, derive,
// filter, aggregate, rank, format and write.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/rentyield/internal/adapters/loader"
	"github.com/okian/rentyield/internal/adapters/report"
	"github.com/okian/rentyield/internal/domain/aggregate"
	"github.com/okian/rentyield/internal/domain/model"
	"github.com/okian/rentyield/internal/domain/ranking"
	"github.com/okian/rentyield/internal/domain/types"
	"github.com/okian/rentyield/internal/domain/yield"
	"github.com/okian/rentyield/pkg/logger"
	"github.com/okian/rentyield/pkg/metrics"
)

// Stage names reported to the probe and the stage duration histogram.
const (
	StageLoad      = "load"
	StageDerive    = "derive"
	StageFilter    = "filter"
	StageAggregate = "aggregate"
	StageRank      = "rank"
	StageFormat    = "format"
	StageWrite     = "write"
)

// Service runs the analysis pipeline. It holds no state between runs.
type Service struct {
	source loader.Source
	sink   report.Sink

	// Analysis parameters
	threshold float64
	topN      int
	places    int
	indent    int

	metrics  *metrics.Manager
	newRunID func() string

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource replaces the listings loader.
func WithSource(src loader.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithSink replaces the report writer.
func WithSink(sink report.Sink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithYieldThreshold sets the exclusive yield percentage a listing must exceed.
func WithYieldThreshold(threshold float64) Option {
	return func(s *Service) {
		s.threshold = threshold
	}
}

// WithTopN sets how many suburbs the report keeps.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithRoundPlaces sets the decimal places kept in report figures.
func WithRoundPlaces(places int) Option {
	return func(s *Service) {
		if places >= 0 {
			s.places = places
		}
	}
}

// WithIndent sets the JSON indentation of the default report writer.
func WithIndent(spaces int) Option {
	return func(s *Service) {
		if spaces >= 0 {
			s.indent = spaces
		}
	}
}

// WithMetrics sets the metrics manager runs report to.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		threshold: yield.DefaultThreshold,
		topN:      ranking.DefaultTopN,
		places:    types.DefaultRoundPlaces,
		indent:    report.DefaultIndent,
		metrics:   metrics.Global(),
		newRunID:  uuid.NewString,
		logger:    logger.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.source == nil {
		s.source = loader.New(loader.WithLogger(s.logger.Named("loader")))
	}
	if s.sink == nil {
		s.sink = report.New(report.WithIndent(s.indent), report.WithLogger(s.logger.Named("report")))
	}
	return s
}

// Result describes one finished run.
type Result struct {
	RunID      string
	Loaded     int
	Qualifying int
	Report     types.Report
	Summary    metrics.RunSummary
}

// Run loads the listings at in, analyses them and writes the report to out.
//
// Load failures are returned unchanged (loader.ErrNotFound, loader.ErrLoad),
// write failures as report.ErrWrite. A panic anywhere in the run is recovered
// and returned as ErrUnexpected. The context is checked between stages; a
// cancelled run writes nothing.
func (s *Service) Run(ctx context.Context, in, out string) (res Result, err error) {
	res.RunID = s.newRunID()
	log := s.logger.With(logger.String("run_id", res.RunID))
	probe := s.metrics.StartProbe()

	defer func() {
		outcome := metrics.OutcomeSuccess
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnexpected, r)
			outcome = metrics.OutcomePanic
		} else if err != nil {
			outcome = metrics.OutcomeFailure
		}
		res.Summary = probe.Stop(outcome)

		fields := []logger.Field{
			logger.String("outcome", outcome),
			logger.Duration("elapsed", res.Summary.Elapsed),
			logger.Uint64("peak_heap_bytes", res.Summary.PeakHeapBytes),
		}
		if err != nil {
			log.Error(ctx, "analysis failed", append(fields, logger.Error(err))...)
			return
		}
		log.Info(ctx, "analysis complete", fields...)
	}()

	listings, err := s.source.Load(ctx, in)
	if err != nil {
		return res, err
	}
	probe.Mark(StageLoad)
	res.Loaded = len(listings)
	s.metrics.SetRowsLoaded(res.Loaded)
	log.Info(ctx, "listings loaded", logger.String("input", in), logger.Int("rows", res.Loaded))

	a, err := s.analyze(ctx, listings, func(stage string) { probe.Mark(stage) })
	if err != nil {
		return res, err
	}
	res.Qualifying = a.qualifying
	res.Report = a.report

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := s.sink.Write(ctx, out, res.Report); err != nil {
		return res, err
	}
	probe.Mark(StageWrite)
	log.Info(ctx, "report written",
		logger.String("output", out),
		logger.Int("suburbs", len(res.Report.TopSuburbs)),
	)
	return res, nil
}

// Analyze runs the in-memory stages over listings and returns the report
// without writing it.
func (s *Service) Analyze(ctx context.Context, listings []model.Listing) (types.Report, error) {
	a, err := s.analyze(ctx, listings, func(string) {})
	return a.report, err
}

type analysis struct {
	qualifying int
	report     types.Report
}

func (s *Service) analyze(ctx context.Context, listings []model.Listing, mark func(stage string)) (analysis, error) {
	calc := yield.NewCalculator(yield.WithThreshold(s.threshold))

	derived := calc.DeriveAll(listings)
	mark(StageDerive)

	kept := calc.Filter(derived)
	mark(StageFilter)
	s.metrics.SetRowsQualifying(len(kept))
	s.logger.Debug(ctx, "listings filtered",
		logger.Float64("threshold", s.threshold),
		logger.Int("qualifying", len(kept)),
	)
	if err := ctx.Err(); err != nil {
		return analysis{}, err
	}

	groups := aggregate.BySuburb(kept)
	mark(StageAggregate)
	if err := ctx.Err(); err != nil {
		return analysis{}, err
	}

	ranked := ranking.TopN(groups, s.topN)
	mark(StageRank)
	s.metrics.SetSuburbsRanked(len(ranked))

	rep := types.Format(ranked, s.places)
	mark(StageFormat)

	return analysis{qualifying: len(kept), report: rep}, nil
}
