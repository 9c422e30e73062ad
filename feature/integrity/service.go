package integrity

import (
	"context"

	"enum-sync/core/database"
	"enum-sync/core/enumdef"
	"enum-sync/core/reconcile"
	"enum-sync/feature/integrity/checks"

	"go.uber.org/zap"
)

// DefinitionSource resolves the enum definitions the checks run against.
// The enums feature's service satisfies it.
type DefinitionSource interface {
	Definitions(ctx context.Context) ([]*enumdef.Definition, error)
}

// Service handles integrity checks across the configured targets.
type Service struct {
	source  DefinitionSource
	targets []string
	logger  *zap.Logger
	// planner runs in remove mode so drift counting always surfaces
	// orphaned rows; it never applies anything
	planner *reconcile.Synchronizer
}

// NewService creates a new integrity service.
func NewService(source DefinitionSource, targets []string, logger *zap.Logger) *Service {
	return &Service{
		source:  source,
		targets: targets,
		logger:  logger,
		planner: reconcile.NewSynchronizer(reconcile.Options{Mode: reconcile.ModeRemove}),
	}
}

// CheckSchema verifies the enum tables of every target against the expected
// id/name shape. A target that cannot be reached is reported and skipped so
// the remaining targets still get checked.
func (s *Service) CheckSchema(ctx context.Context) ([]*checks.SchemaReport, error) {
	defs, err := s.source.Definitions(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*checks.SchemaReport, 0, len(s.targets))
	for _, dsn := range s.targets {
		db, err := database.Open(dsn)
		if err != nil {
			reports = append(reports, &checks.SchemaReport{
				Target: database.Redact(dsn),
				Errors: []string{err.Error()},
			})
			continue
		}

		report, err := checks.CheckSchema(db, database.Redact(dsn), defs)
		_ = database.Close(db)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// CheckDrift computes the pending work of every target without mutating
// anything. Unreachable targets are reported and skipped.
func (s *Service) CheckDrift(ctx context.Context) ([]*checks.DriftReport, error) {
	defs, err := s.source.Definitions(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*checks.DriftReport, 0, len(s.targets))
	for _, dsn := range s.targets {
		report, err := checks.CheckDrift(ctx, s.planner, dsn, defs)
		if err != nil {
			s.logger.Warn("Drift check failed for target",
				zap.String("target", database.Redact(dsn)), zap.Error(err))
			reports = append(reports, &checks.DriftReport{
				Target: database.Redact(dsn),
				Error:  err.Error(),
			})
			continue
		}
		reports = append(reports, report)
	}

	return reports, nil
}
