package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carbonroots/carbonroots/internal/greenops"
	"github.com/carbonroots/carbonroots/internal/logging"
	"github.com/carbonroots/carbonroots/internal/metrics"
	"github.com/carbonroots/carbonroots/internal/session"
	"github.com/carbonroots/carbonroots/internal/species"
	"github.com/carbonroots/carbonroots/internal/usagelog"
)

// Service runs one calculate interaction end to end. It is shared by the
// TUI, the line prompt and the calc subcommand.
type Service struct {
	loader  species.Loader
	store   usagelog.Store
	metrics *metrics.Recorder
}

// NewService creates a Service. store and recorder may be nil; a nil store
// skips usage logging.
func NewService(loader species.Loader, store usagelog.Store, recorder *metrics.Recorder) *Service {
	return &Service{loader: loader, store: store, metrics: recorder}
}

// Outcome is what the user sees after pressing Calculate.
type Outcome struct {
	Result Result
	Entry  usagelog.Entry
	// Table is the dataset the result was computed from.
	Table *species.Table
	// LogErr is set when the result was computed but the usage log entry
	// could not be written. The result is still valid.
	LogErr error
}

// Logged reports whether the usage log entry was persisted.
func (o Outcome) Logged() bool {
	return o.LogErr == nil
}

// LoadTable re-reads the species dataset.
func (s *Service) LoadTable(ctx context.Context) (*species.Table, error) {
	log := logging.FromContext(ctx)

	table, err := s.loader()
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "engine").
			Err(err).
			Msg("species dataset unavailable")
		return nil, err
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("source", table.Source()).
		Int("species_count", table.Len()).
		Msg("species dataset loaded")
	return table, nil
}

// Calculate reloads the dataset, evaluates sc for the identified user and
// appends one usage log entry. Nothing is logged unless the identity is set
// and the dataset loads.
func (s *Service) Calculate(ctx context.Context, id *session.Identity, sc Scenario) (Outcome, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	if id == nil || !id.IsSet() {
		return Outcome{}, fmt.Errorf("calculating: %w", session.ErrEmptyName)
	}

	table, err := s.LoadTable(ctx)
	if err != nil {
		return Outcome{}, err
	}

	result, err := Calculate(table, sc)
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "engine").
			Str("species", sc.Species).
			Err(err).
			Msg("calculation rejected")
		return Outcome{}, err
	}

	out := Outcome{
		Result: result,
		Entry:  usagelog.NewEntry(id.Name(), sc.Species, sc.Trees, sc.Years, result.TotalKg),
		Table:  table,
	}

	if s.store != nil {
		if appendErr := s.store.Append(ctx, out.Entry); appendErr != nil {
			out.LogErr = appendErr
			s.metrics.ObserveLogFailure()
			log.Warn().
				Ctx(ctx).
				Str("component", "engine").
				Str("path", s.store.Path()).
				Err(appendErr).
				Msg("usage log entry not saved")
		}
	}

	s.metrics.ObserveCalculation(sc.Species, result.TotalKg)
	if flushErr := s.metrics.Flush(); flushErr != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "engine").
			Err(flushErr).
			Msg("metrics textfile not written")
	}

	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "calculate").
		Str("species", sc.Species).
		Int("trees", sc.Trees).
		Int("years", sc.Years).
		Str("co2_kg", greenops.FormatKg(result.TotalKg)).
		Bool("logged", out.Logged()).
		Dur("duration_ms", time.Since(start)).
		Msg("calculation complete")

	return out, nil
}

// IsUserError reports whether err is something the user can fix from the
// input surface, as opposed to an environment or programming failure.
func IsUserError(err error) bool {
	return errors.Is(err, session.ErrEmptyName) ||
		errors.Is(err, ErrUnknownSpecies) ||
		errors.Is(err, ErrInvalidScenario)
}
