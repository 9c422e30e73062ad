// Package enums implements the enum synchronization feature.
//
// It exposes the read -> plan -> apply pipeline of core/reconcile over HTTP,
// resolving enum definitions from one of three sources (in order of
// precedence):
//  1. Manifest file: A local JSON manifest (manifest.path).
//  2. Object storage: The manifest object in the configured bucket (manifest.object).
//  3. Registry: Definitions registered in code via core/enumdef.
//
// # Components
//
//   - Service: Resolves definitions and drives the synchronizer across the
//     configured targets. Concurrent sync requests are collapsed into a
//     single run.
//   - Handler: Exposes HTTP endpoints for syncing, planning and listing.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /enums/sync : Synchronize every target, returns the run status.
//   - POST /enums/plan : Compute pending work without mutating anything.
//   - GET  /enums : List the resolved enum definitions.
//   - GET  /enums/status : Status of the most recent synchronization run.
package enums
