// Package executor implements a synchronous, depth-first query executor
// over the miniql type system.
//
// # Execution model
//
// Execute resolves the parsed selection tree against the root type for the
// operation kind (query or mutation) and the host-supplied root value. Per
// field the executor:
//
//  1. Looks up the field definition on the current object type; a missing
//     field fails the request naming both the field and the type. This is
//     the primary schema-validation surface, detected lazily during
//     execution rather than ahead of time.
//  2. Obtains the raw value through the field's resolver when one is set
//     (with an empty argument map), or through default resolution against
//     the source value (FieldSource capability, map key, exported struct
//     field, zero-argument accessor).
//  3. Either recurses — object types with a non-empty nested selection, and
//     lists of objects element-wise — or hands the value to the coercer.
//
// # Coercion
//
// coerceValue enforces the declared type: NonNull coerces the wrapped type
// and then rejects a null result; List passes null through, wraps bare
// values as single-element sequences, and coerces elements in order; the
// built-in scalars convert with per-scalar strictness (Int strict, Float
// numeric, Boolean permissive and never failing, String/ID textual).
//
// # Errors and concurrency
//
// Execution is fail-fast: the first error aborts the whole request and
// there is no partial-result shape. Foreign resolver errors are wrapped
// with the field attached; *errors.QueryError values pass through
// unchanged. The executor keeps no state between requests; one instance is
// safely shared across goroutines because the schema is read-only and all
// per-request trees are private. Field order within a level follows the
// selection order deterministically.
//
// There is no depth limiting or cancellation inside the executor; a
// resolver may watch ctx, but the recursive descent itself never suspends.
package executor
