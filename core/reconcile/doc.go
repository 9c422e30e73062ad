// Package reconcile keeps database enum tables in exact correspondence with
// their in-code or manifest-declared definitions.
//
// # Architecture
//
// The pipeline has three stages, each usable on its own:
//
//  1. Reader: loads the (id, name) rows a table currently holds. A missing
//     table reads as empty, which makes the first run against a fresh
//     database a plain bootstrap rather than a special case.
//
//  2. Planner: a pure diff over the definition and the existing rows. It
//     classifies every definition row as insert, update or untouched, and
//     every unknown table row per the deletion mode (ignore, remove, error).
//     The resulting plan's three sets are disjoint and deterministically
//     ordered.
//
//  3. Executor: creates the table when absent and applies the plan inside a
//     single transaction, deletes first, then updates, then inserts, so an
//     ID can be retired and reissued in one pass.
//
// The Synchronizer wraps the pipeline per connection and fans it out across
// many targets, sequentially (fail-fast) or in parallel (bounded workers,
// per-target failure isolation, one aggregate error).
//
// # Determinism and idempotence
//
// Planning the same definition against the same rows always yields the same
// plan, and planning against a freshly synchronized table yields an empty
// one, so re-running the synchronizer is always safe.
//
// # Usage Example
//
//	sync := reconcile.NewSynchronizer(reconcile.Options{
//	    Mode: reconcile.ModeRemove,
//	    Sink: logger.NewSink(log),
//	})
//
//	report, err := sync.SyncAll(ctx, cfg.Database.TargetList(), enumdef.Definitions(), true)
//	if err != nil {
//	    for _, te := range reconcile.TargetErrors(err) {
//	        log.Error("target failed", zap.String("target", te.Target), zap.Error(te.Err))
//	    }
//	}
package reconcile
