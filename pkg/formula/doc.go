// Package formula builds Airtable filter-formula expressions from typed
// field handles.
//
// Every operation is a pure function from a field identity and operands to a
// formula fragment: a syntactically valid, balanced string that can be
// spliced into larger expressions with the combinators (And, Or, Xor, Not,
// If). The package never evaluates formulas; evaluation happens server-side
// when a fragment is passed as the filterByFormula parameter of a record
// query.
//
// Typed handles are constructed from a field's display name plus the
// table's name-to-id map, so generated bindings can reference fields by
// their stable ids while callers keep using display names:
//
//	f, err := formula.NewTextField("Email", ids)
//	if err != nil { ... }
//	frag := formula.And(f.Contains("@example.com"), f.IsNotEmpty())
//
// The package also carries text utilities for the formula language itself:
// a tokenizer, a whitespace condenser, a pretty printer, and an ANSI
// syntax highlighter.
package formula
