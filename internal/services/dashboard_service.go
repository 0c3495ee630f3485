package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/salescharts/internal/chart"
	"github.com/terraincognita07/salescharts/internal/loader"
	"github.com/terraincognita07/salescharts/internal/models"
	"golang.org/x/sync/semaphore"
)

var (
	ErrLoadInProgress = errors.New("load in progress")
	ErrChartApply     = errors.New("apply chart failed")

	errLoadAbandoned = errors.New("load finished without a result")
)

// DashboardRowLoader delivers one load outcome on the returned channel.
type DashboardRowLoader interface {
	LoadAsync(ctx context.Context, source loader.Source) <-chan loader.Result
}

type DashboardChart interface {
	Apply(series models.Series, present bool) (chart.Transition, error)
}

// DashboardService runs loader, series builder and chart controller for one
// page and keeps its status indicator.
type DashboardService struct {
	name    string
	loader  DashboardRowLoader
	builder *SeriesBuilder
	chart   DashboardChart
	guard   *semaphore.Weighted
	logger  zerolog.Logger
	now     func() time.Time

	mu      sync.RWMutex
	status  models.Status
	series  models.Series
	present bool
}

type RunResult struct {
	Status     models.Status
	Transition chart.Transition
}

func NewDashboardService(name string, rows DashboardRowLoader, builder *SeriesBuilder, chartController DashboardChart, logger zerolog.Logger) *DashboardService {
	if builder == nil {
		builder = NewSeriesBuilder("", "", "")
	}
	service := &DashboardService{
		name:    name,
		loader:  rows,
		builder: builder,
		chart:   chartController,
		guard:   semaphore.NewWeighted(1),
		logger:  logger.With().Str("component", "dashboard").Str("dashboard", name).Logger(),
		now:     time.Now,
	}
	service.status = models.Status{State: models.LoadStateIdle, UpdatedAt: service.now()}
	return service
}

func (service *DashboardService) Name() string {
	return service.name
}

// Run performs one load. A second Run while one is outstanding returns
// ErrLoadInProgress without touching status or chart. A failed load leaves
// the chart as it was and returns the *loader.LoadError, or ctx.Err() when
// ctx ends first.
func (service *DashboardService) Run(ctx context.Context, source loader.Source) (RunResult, error) {
	if !service.guard.TryAcquire(1) {
		return RunResult{Status: service.Status()}, ErrLoadInProgress
	}
	defer service.guard.Release(1)

	fileName := source.Name()
	service.setStatus(models.Status{State: models.LoadStateLoading, FileName: fileName})

	rows, err := service.await(ctx, service.loader.LoadAsync(ctx, source))
	if err != nil {
		status := service.setStatus(models.Status{State: models.LoadStateFailed, Detail: err.Error(), FileName: fileName})
		service.logger.Error().Err(err).Str("source", fileName).Msg("dashboard load failed")
		return RunResult{Status: status, Transition: chart.TransitionUnchanged}, err
	}

	series, present := service.builder.Build(rows)
	transition, err := service.chart.Apply(series, present)
	if err != nil {
		status := service.setStatus(models.Status{State: models.LoadStateFailed, Detail: err.Error(), FileName: fileName, Rows: len(rows)})
		return RunResult{Status: status, Transition: transition}, fmt.Errorf("%w: %w", ErrChartApply, err)
	}

	service.mu.Lock()
	service.series = series
	service.present = present
	service.mu.Unlock()

	status := service.setStatus(models.Status{State: models.LoadStateLoaded, FileName: fileName, Rows: len(rows)})
	service.logger.Info().
		Str("source", fileName).
		Int("rows", len(rows)).
		Str("transition", string(transition)).
		Msg("dashboard refreshed")
	return RunResult{Status: status, Transition: transition}, nil
}

// await blocks until the load completes or ctx is done.
func (service *DashboardService) await(ctx context.Context, results <-chan loader.Result) ([]models.Row, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result, ok := <-results:
		if !ok {
			return nil, errLoadAbandoned
		}
		return result.Rows, result.Err
	}
}

func (service *DashboardService) Status() models.Status {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return service.status
}

// Series returns the last successfully loaded series and whether one exists.
func (service *DashboardService) Series() (models.Series, bool) {
	service.mu.RLock()
	defer service.mu.RUnlock()
	if !service.present {
		return models.Series{}, false
	}
	return service.series.Clone(), true
}

func (service *DashboardService) setStatus(status models.Status) models.Status {
	status.UpdatedAt = service.now()
	service.mu.Lock()
	service.status = status
	service.mu.Unlock()
	return status
}
