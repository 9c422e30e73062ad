// Package integrity provides read-only health checks for the enum targets.
//
// Unlike the 'enums' package which mutates tables to match their definitions,
// this package only inspects. Nothing here writes to a target.
//
// # Checks Provided
//
//   - Schema: Verifies that every enum table exists and carries the expected
//     id/name columns with compatible types.
//   - Drift: Counts the pending inserts, updates and orphaned rows per table,
//     using the same read and planning code the synchronizer runs on.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/drift : Runs the drift check.
package integrity
