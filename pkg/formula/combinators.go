package formula

import "strings"

// combine joins the non-empty fragments into NAME(a,b,...). Empty fragments
// are elided so conditionally-built filters compose without special casing;
// when every fragment is empty the bare call NAME() is still emitted.
func combine(name string, fragments []string) string {
	kept := fragments[:0:0]
	for _, f := range fragments {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return name + "(" + strings.Join(kept, ",") + ")"
}

// And matches when every fragment matches.
func And(fragments ...string) string { return combine("AND", fragments) }

// Or matches when at least one fragment matches.
func Or(fragments ...string) string { return combine("OR", fragments) }

// Xor matches when an odd number of fragments match.
func Xor(fragments ...string) string { return combine("XOR", fragments) }

// Not inverts the fragments. Like the other combinators it elides empty
// arguments, though in practice it is called with exactly one.
func Not(fragments ...string) string { return combine("NOT", fragments) }

// IfBuilder is the entry stage of the IF expression builder. Produced by If,
// consumed by Then or ThenString.
type IfBuilder struct {
	cond string
}

// If starts an IF(condition,then,else) expression. The condition is any
// formula fragment.
func If(condition string) IfBuilder {
	return IfBuilder{cond: condition}
}

// ThenBuilder holds a condition and its true-branch value; Else or
// ElseString completes the expression.
type ThenBuilder struct {
	cond string
	then string
}

// Then sets the true-branch to a raw fragment.
func (b IfBuilder) Then(value string) ThenBuilder {
	return ThenBuilder{cond: b.cond, then: value}
}

// ThenString sets the true-branch to a quoted string literal.
func (b IfBuilder) ThenString(value string) ThenBuilder {
	return ThenBuilder{cond: b.cond, then: quote(value)}
}

// Else completes the expression with a raw false-branch fragment.
func (b ThenBuilder) Else(value string) string {
	return call("IF", b.cond, b.then, value)
}

// ElseString completes the expression with a quoted string literal.
func (b ThenBuilder) ElseString(value string) string {
	return call("IF", b.cond, b.then, quote(value))
}
