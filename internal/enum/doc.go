// Package enum implements the query and hydration layer over a closed set
// of named cases.
//
// The package never creates cases. A declaring collaborator implements Set
// to enumerate its cases in declaration order and to read their attributes;
// everything else is built on top of that capability:
//
//   - Key and Resolve turn a case plus a key (attribute name or function)
//     into an ir.IRValue.
//   - Registry is the lookup engine: ByName, ByValue, ByKey and their Try
//     forms, native From/TryFrom hydration, and dynamic Call dispatch of
//     from<Key>/tryFrom<Key> invocation names.
//   - Collection is an ordered, immutable view with filter, sort, pluck,
//     grouping and membership operations. Every operation returns a new
//     value; the receiver is never modified.
//
// # Cardinality
//
// Key lookups return a Result, which is None, One or Many depending on how
// many cases matched. Try forms report None as an empty Result; must forms
// turn None into an INVALID_KEY error.
//
// # Errors
//
// All failures are *Error values carrying a Code (NOT_FOUND, INVALID_KEY,
// UNKNOWN_KEY, UNSUPPORTED_OPERATION), the enum name and the offending key
// or target. Try forms only absorb "no match"; unknown keys and unsupported
// operations are always reported.
//
// # Concurrency
//
// Registries and collections hold no mutable state. They are safe for
// concurrent readers as long as the Set's attribute accessors are.
package enum
