// Package enumdef models the enumerations the synchronizer treats as the
// source of truth.
//
// A Definition binds an enum to its database table: the table name plus the
// ordered (id, name) members. Definitions are validated at construction
// (identifier-safe table name, no duplicate IDs, no duplicate names) and are
// immutable afterwards, so every consumer downstream can trust them blindly.
//
// # Supplying definitions
//
// Two paths exist and can be mixed:
//
//   - Explicit registration: application code builds definitions with
//     MustNew and adds them to a Registry (or the package-level default)
//     during startup.
//   - Declarative manifest: a JSON document listing the enums, loaded from
//     a local file or from object storage.
//
// There is no reflection-based discovery; an enum that is not registered or
// declared does not exist as far as synchronization is concerned.
//
// # Usage
//
//	enumdef.MustRegister(enumdef.MustNew("order_status", []enumdef.Row{
//	    {ID: 1, Name: "PLACED"},
//	    {ID: 2, Name: "SHIPPED"},
//	}))
//
//	defs, err := enumdef.LoadManifestFile("enums.json")
package enumdef
