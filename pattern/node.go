package pattern

import "strings"

// Node represents one node of a compiled matcher tree. A tree is built once by
// the combinator parser and never mutated afterward, so concurrent evaluation
// needs no synchronization.
//
// A single-term expression compiles to a bare Leaf, never to a one-child And
// or Or: client code distinguishes leaves from combinators by node shape.
type Node[A any] interface {
	isNode()
	String() string
}

// Leaf wraps one atomic matcher produced by the injected atom constructor.
type Leaf[A any] struct {
	Atom A
	Text string // the atom substring as written in the expression
}

func (Leaf[A]) isNode() {}
func (n Leaf[A]) String() string {
	return n.Text
}

// And matches when all of its children match. Always has at least two children.
type And[A any] struct {
	Kids []Node[A]
}

func (And[A]) isNode() {}
func (n And[A]) String() string {
	return joinKids(n.Kids, " and ")
}

// Or matches when any of its children matches. Always has at least two children.
type Or[A any] struct {
	Kids []Node[A]
}

func (Or[A]) isNode() {}
func (n Or[A]) String() string {
	return joinKids(n.Kids, " or ")
}

// Not inverts its single child.
type Not[A any] struct {
	Kid Node[A]
}

func (Not[A]) isNode() {}
func (n Not[A]) String() string {
	return "(not " + n.Kid.String() + ")"
}

func joinKids[A any](kids []Node[A], op string) string {
	parts := make([]string, len(kids))
	for i, k := range kids {
		parts[i] = k.String()
	}
	return "(" + strings.Join(parts, op) + ")"
}

// Eval tests a matcher tree against a candidate by applying pred to every leaf
// atom reached. It is a pure read over the tree.
func Eval[A any](n Node[A], pred func(A) bool) bool {
	switch t := n.(type) {
	case Leaf[A]:
		return pred(t.Atom)
	case And[A]:
		for _, k := range t.Kids {
			if !Eval(k, pred) {
				return false
			}
		}
		return true
	case Or[A]:
		for _, k := range t.Kids {
			if Eval(k, pred) {
				return true
			}
		}
		return false
	case Not[A]:
		return !Eval(t.Kid, pred)
	default:
		return false
	}
}

// Leaves returns every leaf of the tree in expression order.
func Leaves[A any](n Node[A]) []Leaf[A] {
	var out []Leaf[A]
	collectLeaves(n, &out)
	return out
}

func collectLeaves[A any](n Node[A], out *[]Leaf[A]) {
	switch t := n.(type) {
	case Leaf[A]:
		*out = append(*out, t)
	case And[A]:
		for _, k := range t.Kids {
			collectLeaves(k, out)
		}
	case Or[A]:
		for _, k := range t.Kids {
			collectLeaves(k, out)
		}
	case Not[A]:
		collectLeaves(t.Kid, out)
	}
}
