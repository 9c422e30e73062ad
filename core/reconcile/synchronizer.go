package reconcile

import (
	"context"
	"runtime"
	"sync"

	"enum-sync/core/database"
	"enum-sync/core/enumdef"
	"enum-sync/core/logger"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"
)

// OpenFunc acquires a database connection for a connection string. It
// exists as an injection point so tests can hand the synchronizer mocked
// connections.
type OpenFunc func(dsn string) (*gorm.DB, error)

// Options configures a Synchronizer. Zero values fall back to sensible
// defaults: ModeIgnore, a worker per CPU, database.Open and a silent sink.
type Options struct {
	// Mode decides the fate of table rows outside the enum definition.
	Mode DeletionMode

	// Workers bounds parallel target synchronization. Zero or negative
	// means one worker per CPU.
	Workers int

	// Open acquires connections; defaults to database.Open.
	Open OpenFunc

	// Sink receives scoped progress, summaries and failures.
	Sink logger.Sink
}

// Synchronizer drives the read -> plan -> apply pipeline across one or many
// target databases.
type Synchronizer struct {
	mode    DeletionMode
	workers int
	open    OpenFunc
	sink    logger.Sink
}

// NewSynchronizer builds a Synchronizer from options.
func NewSynchronizer(opts Options) *Synchronizer {
	s := &Synchronizer{
		mode:    opts.Mode,
		workers: opts.Workers,
		open:    opts.Open,
		sink:    opts.Sink,
	}
	if s.mode == "" {
		s.mode = ModeIgnore
	}
	if s.workers <= 0 {
		s.workers = runtime.NumCPU()
	}
	if s.open == nil {
		s.open = database.Open
	}
	if s.sink == nil {
		s.sink = logger.Nop()
	}
	return s
}

// SyncTarget synchronizes every definition against one target database.
//
// With no definitions there is nothing to do and no connection is opened.
// Otherwise the connection is acquired once, released on every exit path,
// and the definitions run in registration order. The first failing table
// stops the remaining ones; tables already applied stay applied.
func (s *Synchronizer) SyncTarget(ctx context.Context, dsn string, defs []*enumdef.Definition) (*TargetReport, error) {
	report := &TargetReport{Target: database.Redact(dsn)}
	if len(defs) == 0 {
		return report, nil
	}

	sink := s.sink.Child(report.Target)
	done := sink.Scope("synchronizing target", zap.Int("enums", len(defs)))
	defer done()

	db, err := s.open(dsn)
	if err != nil {
		wrapped := &DataAccessError{Op: "connect", Err: err}
		sink.Exception(wrapped)
		return report, wrapped
	}
	defer database.Close(db)

	for _, def := range defs {
		existing, err := ReadTable(ctx, db, def.Table())
		if err != nil {
			sink.Exception(err)
			return report, err
		}

		plan, err := BuildPlan(def, existing, s.mode)
		if err != nil {
			sink.Exception(err)
			return report, err
		}

		result, err := ApplyPlan(ctx, db, plan, sink)
		if err != nil {
			sink.Exception(err)
			return report, err
		}

		report.Tables = append(report.Tables, result)
	}

	return report, nil
}

// SyncAll synchronizes every definition against every target.
//
// Sequential runs are fail-fast: the first failing target ends the run and
// its error is returned, wrapped with the target identity. Parallel runs
// fan the targets out over a bounded worker pool instead; one target
// failing never disturbs the others, and all failures come back combined
// into a single aggregate error.
func (s *Synchronizer) SyncAll(ctx context.Context, dsns []string, defs []*enumdef.Definition, parallel bool) (*Report, error) {
	report := &Report{}
	if len(defs) == 0 || len(dsns) == 0 {
		return report, nil
	}

	if !parallel {
		for _, dsn := range dsns {
			targetReport, err := s.SyncTarget(ctx, dsn, defs)
			report.Targets = append(report.Targets, targetReport)
			if err != nil {
				return report, &TargetError{Target: targetReport.Target, Err: err}
			}
		}
		return report, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures error
		sem      = semaphore.NewWeighted(int64(s.workers))
	)

	report.Targets = make([]*TargetReport, len(dsns))

	for i, dsn := range dsns {
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			failures = multierr.Append(failures, &TargetError{Target: database.Redact(dsn), Err: err})
			mu.Unlock()
			break
		}

		wg.Add(1)
		go func(i int, dsn string) {
			defer wg.Done()
			defer sem.Release(1)

			targetReport, err := s.SyncTarget(ctx, dsn, defs)

			mu.Lock()
			defer mu.Unlock()
			report.Targets[i] = targetReport
			if err != nil {
				failures = multierr.Append(failures, &TargetError{Target: targetReport.Target, Err: err})
			}
		}(i, dsn)
	}

	wg.Wait()
	return report, failures
}

// PlanTarget computes plans for one target without applying anything. It
// backs dry runs and the drift check: same read and planning code paths,
// no mutation, not even table creation.
func (s *Synchronizer) PlanTarget(ctx context.Context, dsn string, defs []*enumdef.Definition) (*TablePlans, error) {
	out := &TablePlans{Target: database.Redact(dsn)}
	if len(defs) == 0 {
		return out, nil
	}

	db, err := s.open(dsn)
	if err != nil {
		return out, &DataAccessError{Op: "connect", Err: err}
	}
	defer database.Close(db)

	for _, def := range defs {
		existing, err := ReadTable(ctx, db, def.Table())
		if err != nil {
			return out, err
		}
		plan, err := BuildPlan(def, existing, s.mode)
		if err != nil {
			return out, err
		}
		out.Plans = append(out.Plans, plan)
	}

	return out, nil
}
