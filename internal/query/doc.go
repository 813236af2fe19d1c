// Package query provides a small textual pipeline language over enum
// registries, used by the CLI and the conformance harness.
//
// A pipeline is a sequence of stages separated by "|":
//
//	byKey color green | sortDescBy color | pluck
//
// The first stage is a SOURCE that selects cases from the enum:
//
//	collect                       every case, declaration order
//	byName n / tryByName n        name lookup
//	byValue v / tryByValue v      backing value lookup
//	from v / tryFrom v            native hydration
//	byKey k t / tryByKey k t      key lookup, cardinality-aware
//	fromKey [t] / tryFromKey [t]  dynamic lookup (target defaults to true)
//
// Middle stages are collection OPS: only, except, onlyValues,
// exceptValues, where, sort, sortDesc, sortBy, sortDescBy, sortByValue,
// sortDescByValue.
//
// The last stage may be a TERMINAL: count, names, values, keys, pluck,
// casesBy, has, doesntHave, get, is, isNot, in, notIn.
//
// LITERALS:
//
// true, false, null, integers and double-quoted strings are decoded as
// JSON scalars; any other bare word is a string. Floats are not values.
//
// OUTPUT:
//
// Evaluation produces an ir.IRValue. A single case renders as
// {"case": name}, several as {"cases": [names...]}, and an empty try
// lookup as null. Mapping terminals (pluck with a key, casesBy) render as
// objects; non-string keys use their JSON text.
//
// SEALED INTERFACES:
//
// Source, Op and Terminal are sealed with marker methods, so the
// evaluator and validator can switch over them exhaustively.
package query
