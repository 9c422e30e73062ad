package enums

import (
	"context"
	"fmt"
	"sync"
	"time"

	"enum-sync/core/enumdef"
	"enum-sync/core/logger"
	"enum-sync/core/reconcile"
	"enum-sync/core/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RunStatus captures the outcome of one synchronization run.
type RunStatus struct {
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Report     *reconcile.Report `json:"report"`
	Errors     []string          `json:"errors,omitempty"`
}

// DefinitionSummary describes one resolved enum for the listing endpoint.
type DefinitionSummary struct {
	Table   string `json:"table"`
	Members int    `json:"members"`
}

// Service handles enum synchronization requests.
type Service struct {
	client   storage.Client
	bucket   string
	logger   *zap.Logger
	sync     *reconcile.Synchronizer
	targets  []string
	manifest enumdef.Config
	parallel bool

	// group collapses concurrent sync triggers into a single run
	group singleflight.Group

	mu   sync.RWMutex
	last *RunStatus
}

// NewService creates a new enums service. The synchronizer is built from the
// sync config section; an unknown deletion mode is rejected here rather than
// on the first request.
func NewService(client storage.Client, bucket string, log *zap.Logger, targets []string, manifest enumdef.Config, cfg reconcile.Config) (*Service, error) {
	mode, err := cfg.DeletionMode()
	if err != nil {
		return nil, err
	}

	return &Service{
		client: client,
		bucket: bucket,
		logger: log,
		sync: reconcile.NewSynchronizer(reconcile.Options{
			Mode:    mode,
			Workers: cfg.Workers,
			Sink:    logger.NewSink(log),
		}),
		targets:  targets,
		manifest: manifest,
		parallel: cfg.Parallel,
	}, nil
}

// Definitions resolves the enum definitions to synchronize. A manifest file
// on disk wins, then the manifest object in storage, then definitions
// registered in code. Storage being unreachable falls back to the registry.
func (s *Service) Definitions(ctx context.Context) ([]*enumdef.Definition, error) {
	if s.manifest.Path != "" {
		return enumdef.LoadManifestFile(s.manifest.Path)
	}

	if s.client != nil && s.manifest.Object != "" {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.logger.Warn("Manifest bucket unreachable, falling back to registered definitions",
				zap.String("bucket", s.bucket), zap.Error(err))
		} else if exists {
			return enumdef.LoadManifestObject(ctx, s.client, s.bucket, s.manifest.Object)
		}
	}

	if defs := enumdef.Definitions(); len(defs) > 0 {
		return defs, nil
	}
	return nil, fmt.Errorf("no enum definitions configured: set manifest.path, upload the manifest object or register definitions in code")
}

// RunSync synchronizes every configured target. Concurrent callers share a
// single run and all receive its status.
func (s *Service) RunSync(ctx context.Context) (*RunStatus, error) {
	v, err, _ := s.group.Do("sync", func() (any, error) {
		return s.runSync(ctx)
	})

	status, _ := v.(*RunStatus)
	return status, err
}

func (s *Service) runSync(ctx context.Context) (*RunStatus, error) {
	defs, err := s.Definitions(ctx)
	if err != nil {
		return nil, err
	}

	status := &RunStatus{StartedAt: time.Now()}
	report, err := s.sync.SyncAll(ctx, s.targets, defs, s.parallel)
	status.FinishedAt = time.Now()
	status.Report = report
	for _, target := range reconcile.TargetErrors(err) {
		status.Errors = append(status.Errors, target.Error())
	}

	s.mu.Lock()
	s.last = status
	s.mu.Unlock()

	return status, err
}

// LastRun returns the status of the most recent completed run, or nil when
// no run has happened yet.
func (s *Service) LastRun() *RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// PlanAll computes pending work for every configured target without touching
// any of them.
func (s *Service) PlanAll(ctx context.Context) ([]*reconcile.TablePlans, error) {
	defs, err := s.Definitions(ctx)
	if err != nil {
		return nil, err
	}

	plans := make([]*reconcile.TablePlans, 0, len(s.targets))
	for _, dsn := range s.targets {
		target, err := s.sync.PlanTarget(ctx, dsn, defs)
		if err != nil {
			return nil, err
		}
		plans = append(plans, target)
	}
	return plans, nil
}

// ListDefinitions returns a summary of every resolved definition.
func (s *Service) ListDefinitions(ctx context.Context) ([]DefinitionSummary, error) {
	defs, err := s.Definitions(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]DefinitionSummary, 0, len(defs))
	for _, def := range defs {
		summaries = append(summaries, DefinitionSummary{Table: def.Table(), Members: def.Len()})
	}
	return summaries, nil
}
