package chart

import (
	"fmt"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/rs/zerolog"
	"github.com/terraincognita07/salescharts/internal/models"
)

type State int

const (
	StateAbsent State = iota
	StatePresent
)

func (state State) String() string {
	if state == StatePresent {
		return "present"
	}
	return "absent"
}

type Transition string

const (
	TransitionCreated   Transition = "created"
	TransitionUpdated   Transition = "updated"
	TransitionDestroyed Transition = "destroyed"
	TransitionUnchanged Transition = "unchanged"
	// TransitionSkipped means a chart was due but its surface does not exist.
	TransitionSkipped Transition = "skipped"
)

// SurfaceLookup resolves a drawing surface by identifier.
type SurfaceLookup interface {
	Lookup(id string) (*Surface, bool)
}

// Handle is the live chart bound to one surface.
type Handle struct {
	surface  *Surface
	bar      *charts.Bar
	series   models.Series
	revision int
}

func (handle *Handle) SurfaceID() string {
	return handle.surface.ID()
}

func (handle *Handle) Series() models.Series {
	return handle.series.Clone()
}

// Revision counts in-place updates since creation.
func (handle *Handle) Revision() int {
	return handle.revision
}

// Controller owns at most one chart for its surface. It is the only code
// that creates, rebinds or destroys that chart.
type Controller struct {
	surfaceID string
	surfaces  SurfaceLookup
	options   Options
	logger    zerolog.Logger
	drawable  func(bar *charts.Bar) Renderer

	mu     sync.Mutex
	handle *Handle
}

func NewController(surfaces SurfaceLookup, surfaceID string, options Options, logger zerolog.Logger) *Controller {
	return &Controller{
		surfaceID: surfaceID,
		surfaces:  surfaces,
		options:   options.withDefaults(),
		logger:    logger.With().Str("component", "chart").Str("surface", surfaceID).Logger(),
		drawable:  func(bar *charts.Bar) Renderer { return bar },
	}
}

func (controller *Controller) SurfaceID() string {
	return controller.surfaceID
}

func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.handle == nil {
		return StateAbsent
	}
	return StatePresent
}

// Handle returns the current chart or nil when none exists.
func (controller *Controller) Handle() *Handle {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.handle
}

// Apply moves the chart to match series. present=false means the data went
// away and any existing chart is destroyed.
func (controller *Controller) Apply(series models.Series, present bool) (Transition, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	switch {
	case controller.handle == nil && !present:
		return TransitionUnchanged, nil
	case controller.handle != nil && !present:
		return controller.destroy(), nil
	case controller.handle != nil:
		return controller.update(series)
	default:
		return controller.create(series)
	}
}

func (controller *Controller) create(series models.Series) (Transition, error) {
	surface, ok := controller.surfaces.Lookup(controller.surfaceID)
	if !ok {
		controller.logger.Debug().Msg("surface not found, chart not drawn")
		return TransitionSkipped, nil
	}

	bound := series.Clone()
	bar := newBar(surface.ID(), controller.options)
	bindSeries(bar, bound, controller.options)
	if err := surface.Draw(controller.drawable(bar)); err != nil {
		return TransitionSkipped, fmt.Errorf("draw chart on %s: %w", surface.ID(), err)
	}

	controller.handle = &Handle{surface: surface, bar: bar, series: bound}
	controller.logger.Info().Int("bars", bound.Len()).Msg("chart created")
	return TransitionCreated, nil
}

// update rebinds the existing chart. When the redraw fails the previous
// binding is restored so handle and surface keep showing the same data.
func (controller *Controller) update(series models.Series) (Transition, error) {
	handle := controller.handle
	bound := series.Clone()
	bindSeries(handle.bar, bound, controller.options)
	if err := handle.surface.Draw(controller.drawable(handle.bar)); err != nil {
		bindSeries(handle.bar, handle.series, controller.options)
		return TransitionUnchanged, fmt.Errorf("redraw chart on %s: %w", handle.surface.ID(), err)
	}

	handle.series = bound
	handle.revision++
	controller.logger.Info().Int("bars", bound.Len()).Int("revision", handle.revision).Msg("chart updated")
	return TransitionUpdated, nil
}

func (controller *Controller) destroy() Transition {
	controller.handle.surface.Clear()
	controller.handle = nil
	controller.logger.Info().Msg("chart destroyed")
	return TransitionDestroyed
}
