/*
Copyright (C) 2023-2024  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package scm

// Kind tags the variant a Value holds. Only one of the corresponding
// fields in Value is meaningful for a given Kind.
type Kind uint8

const (
	KindInt Kind = iota
	KindBool
	KindUnit
	KindPair
	KindBuiltin
	KindClosure
	KindQuiet
)

// Value is the result of every evaluation: a tagged union over the
// handful of runtime types this dialect supports. Unlike memcp's Scmer,
// which packs tags into unsafe pointer bits to cover floats/strings/
// vectors/JIT procs, this Value stays a plain Go struct — the smaller
// variant set (no floats or strings) doesn't need
// the unsafe packing, and a plain struct keeps the switch in Eval
// closed-world-checkable by go vet.
type Value struct {
	Kind    Kind
	Int     int64
	Bool    bool
	Pair    *Pair
	Builtin *Builtin
	Closure *Closure
	Quiet   string
}

// Pair is a cons cell. Pair and Closure are the only heap-allocated,
// shared-ownership value kinds: list tails and closure captures may be
// aliased freely, and a recursively defined closure's captured
// environment can transitively reach the closure itself.
type Pair struct {
	First  Value
	Second Value
}

// Builtin is a native procedure over an already-evaluated argument list.
type Builtin struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

// Closure is a user-defined procedure: its parameter names, its body,
// and the environment snapshot captured when its defining lambda
// expression was evaluated. SelfName is non-empty only for the
// `(define (f ...) ...)` sugar, enabling recursion without a top-level
// lookup.
type Closure struct {
	Params   []string
	Body     Node
	Env      *Env
	SelfName string
}

func NewInt(i int64) Value       { return Value{Kind: KindInt, Int: i} }
func NewBool(b bool) Value       { return Value{Kind: KindBool, Bool: b} }
func NewUnit() Value             { return Value{Kind: KindUnit} }
func NewQuiet(msg string) Value  { return Value{Kind: KindQuiet, Quiet: msg} }
func NewPair(a, b Value) Value   { return Value{Kind: KindPair, Pair: &Pair{First: a, Second: b}} }
func NewBuiltin(b *Builtin) Value { return Value{Kind: KindBuiltin, Builtin: b} }
func NewClosure(c *Closure) Value { return Value{Kind: KindClosure, Closure: c} }

// IsTruthy implements this dialect's truthiness rule: only Bool(false) is falsy.
func IsTruthy(v Value) bool {
	return !(v.Kind == KindBool && !v.Bool)
}

// IsCallable reports whether v can appear in operator position of a call.
func IsCallable(v Value) bool {
	return v.Kind == KindBuiltin || v.Kind == KindClosure
}

// IsProperList reports whether v is Unit, or a Pair whose tail is itself
// a proper list — structural and recursive by definition.
func IsProperList(v Value) bool {
	for {
		switch v.Kind {
		case KindUnit:
			return true
		case KindPair:
			v = v.Pair.Second
		default:
			return false
		}
	}
}

// Equal implements value equality. Pairs compare structurally;
// closures and builtins compare by identity.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindInt:
		return a.Int == b.Int
	case KindBool:
		return a.Bool == b.Bool
	case KindUnit:
		return true
	case KindQuiet:
		return a.Quiet == b.Quiet
	case KindPair:
		return Equal(a.Pair.First, b.Pair.First) && Equal(a.Pair.Second, b.Pair.Second)
	case KindBuiltin:
		return a.Builtin == b.Builtin
	case KindClosure:
		return a.Closure == b.Closure
	}
	return false
}
