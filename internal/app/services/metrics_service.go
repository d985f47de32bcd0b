package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/ssis/internal/app/models/dto"
	"github.com/yigit/ssis/internal/app/repositories"
	"github.com/yigit/ssis/internal/pkg/helpers"
)

// DefaultMetricsDays is the length of the daily histogram
const DefaultMetricsDays = 7

// MetricsService defines the interface for dashboard reporting
type MetricsService interface {
	// Counts never fails: any query error yields all-zero totals.
	Counts(ctx context.Context) dto.CountsResponse
	// Daily returns one entry per calendar day ending today, oldest first.
	Daily(ctx context.Context) ([]dto.DailyMetric, error)
}

type metricsServiceImpl struct {
	metricsRepo repositories.IMetricsRepository
	location    *time.Location
	days        int
	now         func() time.Time
	logger      zerolog.Logger
}

// MetricsOption customizes a metrics service
type MetricsOption func(*metricsServiceImpl)

// WithClock replaces the wall clock used to determine "today"
func WithClock(now func() time.Time) MetricsOption {
	return func(s *metricsServiceImpl) {
		s.now = now
	}
}

// NewMetricsService creates a metrics service bucketing days in loc
func NewMetricsService(metricsRepo repositories.IMetricsRepository, loc *time.Location, days int, logger zerolog.Logger, opts ...MetricsOption) MetricsService {
	if loc == nil {
		loc = time.UTC
	}
	if days < 1 {
		days = DefaultMetricsDays
	}

	s := &metricsServiceImpl{
		metricsRepo: metricsRepo,
		location:    loc,
		days:        days,
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *metricsServiceImpl) Counts(ctx context.Context) dto.CountsResponse {
	var counts dto.CountsResponse
	targets := []struct {
		table string
		dst   *int64
	}{
		{repositories.TableColleges, &counts.Colleges},
		{repositories.TablePrograms, &counts.Programs},
		{repositories.TableStudents, &counts.Students},
		{repositories.TableUsers, &counts.Users},
	}

	for _, target := range targets {
		n, err := s.metricsRepo.CountRows(ctx, target.table)
		if err != nil {
			s.logger.Error().Err(err).Str("table", target.table).Msg("Failed to count rows, reporting zeros")
			return dto.CountsResponse{}
		}
		*target.dst = n
	}

	return counts
}

// window returns the half-open interval [start, end) covered by Daily
func (s *metricsServiceImpl) window() (time.Time, time.Time) {
	today := helpers.StartOfDay(s.now(), s.location)
	start := today.AddDate(0, 0, -(s.days - 1))
	return start, start.AddDate(0, 0, s.days)
}

func (s *metricsServiceImpl) Daily(ctx context.Context) ([]dto.DailyMetric, error) {
	start, end := s.window()

	metrics := make([]dto.DailyMetric, s.days)
	index := make(map[string]int, s.days)
	for i := range metrics {
		key := helpers.DateKey(start.AddDate(0, 0, i))
		metrics[i].Date = key
		index[key] = i
	}

	fields := []struct {
		table string
		field func(*dto.DailyMetric) *int64
	}{
		{repositories.TableColleges, func(m *dto.DailyMetric) *int64 { return &m.College }},
		{repositories.TablePrograms, func(m *dto.DailyMetric) *int64 { return &m.Program }},
		{repositories.TableStudents, func(m *dto.DailyMetric) *int64 { return &m.Students }},
		{repositories.TableUsers, func(m *dto.DailyMetric) *int64 { return &m.Users }},
	}

	for _, f := range fields {
		counts, err := s.metricsRepo.DailyCounts(ctx, f.table, start, end, s.location)
		if err != nil {
			return nil, fmt.Errorf("failed to load daily %s metrics: %w", f.table, err)
		}

		for _, c := range counts {
			i, ok := index[helpers.DateKey(c.Day)]
			if !ok {
				s.logger.Warn().Str("table", f.table).Time("day", c.Day).Msg("Daily count outside metrics window")
				continue
			}
			*f.field(&metrics[i]) += c.Count
		}
	}

	return metrics, nil
}
