/*
Copyright (C) 2023-2024  Carl-Philip Hänsch
Copyright (C) 2013  Pieter Kelchtermans (originally licensed unter WTFPL 2.0)

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

import (
	"fmt"
	"io"
	"os"

	units "github.com/docker/go-units"
)

// Stdout is where `display`/`newline` write. Tests redirect it; the
// REPL, batch runner and -watch runner leave it as os.Stdout.
var Stdout io.Writer = os.Stdout

func wantInts(name string, args []Value) ([]int64, error) {
	out := make([]int64, len(args))
	for i, a := range args {
		if a.Kind != KindInt {
			return nil, errAllNumeric(name)
		}
		out[i] = a.Int
	}
	return out, nil
}

// NewRootEnv builds the interpreter's outermost environment: an empty
// local frame over a fresh top-level, with every required arithmetic,
// comparison, predicate, pair/list, and I/O builtin plus the
// supplemental introspection builtins (env/help/size) installed in its
// builtin table.
func NewRootEnv() *Env {
	env := &Env{Local: make(Vars), Top: newTopLevel()}
	env.Builtins = baseBuiltins(env)
	return env
}

func baseBuiltins(env *Env) Vars {
	vars := make(Vars)

	Declare(vars, &Declaration{"+", "sum of all arguments", 0, -1, func(args []Value) (Value, error) {
		ints, err := wantInts("+", args)
		if err != nil {
			return Value{}, err
		}
		var sum int64
		for _, n := range ints {
			sum += n
		}
		return NewInt(sum), nil
	}})

	Declare(vars, &Declaration{"*", "product of all arguments", 0, -1, func(args []Value) (Value, error) {
		ints, err := wantInts("*", args)
		if err != nil {
			return Value{}, err
		}
		var prod int64 = 1
		for _, n := range ints {
			prod *= n
		}
		return NewInt(prod), nil
	}})

	Declare(vars, &Declaration{"-", "left-fold difference of arguments, or identity for a single argument", 1, -1, func(args []Value) (Value, error) {
		ints, err := wantInts("-", args)
		if err != nil {
			return Value{}, err
		}
		acc := ints[0]
		for _, n := range ints[1:] {
			acc -= n
		}
		return NewInt(acc), nil
	}})

	Declare(vars, &Declaration{"/", "left-fold integer quotient of arguments, or identity for a single argument", 1, -1, func(args []Value) (Value, error) {
		ints, err := wantInts("/", args)
		if err != nil {
			return Value{}, err
		}
		if len(ints) == 1 {
			return NewInt(ints[0]), nil
		}
		acc := ints[0]
		for _, n := range ints[1:] {
			if n == 0 {
				return Value{}, fmt.Errorf("runtime: division by zero")
			}
			acc /= n
		}
		return NewInt(acc), nil
	}})

	Declare(vars, &Declaration{"abs", "absolute value", 1, 1, func(args []Value) (Value, error) {
		ints, err := wantInts("abs", args)
		if err != nil {
			return Value{}, err
		}
		n := ints[0]
		if n < 0 {
			n = -n
		}
		return NewInt(n), nil
	}})

	Declare(vars, &Declaration{"expt", "base raised to a non-negative integer exponent", 2, 2, func(args []Value) (Value, error) {
		ints, err := wantInts("expt", args)
		if err != nil {
			return Value{}, err
		}
		base, exp := ints[0], ints[1]
		if exp < 0 {
			return Value{}, procError("expt", "exponent must be non-negative")
		}
		var result int64 = 1
		for i := int64(0); i < exp; i++ {
			result *= base
		}
		return NewInt(result), nil
	}})

	Declare(vars, &Declaration{"modulo", "remainder of a divided by b, sign follows b", 2, 2, func(args []Value) (Value, error) {
		ints, err := wantInts("modulo", args)
		if err != nil {
			return Value{}, err
		}
		a, b := ints[0], ints[1]
		if b == 0 {
			return Value{}, fmt.Errorf("runtime: division by zero")
		}
		r := a % b
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return NewInt(r), nil
	}})

	Declare(vars, &Declaration{"max", "largest argument", 1, -1, func(args []Value) (Value, error) {
		ints, err := wantInts("max", args)
		if err != nil {
			return Value{}, err
		}
		m := ints[0]
		for _, n := range ints[1:] {
			if n > m {
				m = n
			}
		}
		return NewInt(m), nil
	}})

	Declare(vars, &Declaration{"min", "smallest argument", 1, -1, func(args []Value) (Value, error) {
		ints, err := wantInts("min", args)
		if err != nil {
			return Value{}, err
		}
		m := ints[0]
		for _, n := range ints[1:] {
			if n < m {
				m = n
			}
		}
		return NewInt(m), nil
	}})

	cmp := func(name string, ok func(a, b int64) bool) *Declaration {
		return &Declaration{name, "chained comparison, vacuously true for 0 or 1 args", 0, -1, func(args []Value) (Value, error) {
			ints, err := wantInts(name, args)
			if err != nil {
				return Value{}, err
			}
			for i := 1; i < len(ints); i++ {
				if !ok(ints[i-1], ints[i]) {
					return NewBool(false), nil
				}
			}
			return NewBool(true), nil
		}}
	}
	Declare(vars, cmp("=", func(a, b int64) bool { return a == b }))
	Declare(vars, cmp("<", func(a, b int64) bool { return a < b }))
	Declare(vars, cmp(">", func(a, b int64) bool { return a > b }))
	Declare(vars, cmp("<=", func(a, b int64) bool { return a <= b }))
	Declare(vars, cmp(">=", func(a, b int64) bool { return a >= b }))

	Declare(vars, &Declaration{"zero?", "true if the argument is integer zero", 1, 1, func(args []Value) (Value, error) {
		ints, err := wantInts("zero?", args)
		if err != nil {
			return Value{}, err
		}
		return NewBool(ints[0] == 0), nil
	}})
	Declare(vars, &Declaration{"boolean?", "true if the argument is a boolean", 1, 1, func(args []Value) (Value, error) {
		return NewBool(args[0].Kind == KindBool), nil
	}})
	Declare(vars, &Declaration{"integer?", "true if the argument is an integer", 1, 1, func(args []Value) (Value, error) {
		return NewBool(args[0].Kind == KindInt), nil
	}})
	Declare(vars, &Declaration{"pair?", "true if the argument is a cons cell", 1, 1, func(args []Value) (Value, error) {
		return NewBool(args[0].Kind == KindPair), nil
	}})
	Declare(vars, &Declaration{"list?", "true if the argument is a proper list", 1, 1, func(args []Value) (Value, error) {
		return NewBool(IsProperList(args[0])), nil
	}})
	Declare(vars, &Declaration{"procedure?", "true if the argument is callable", 1, 1, func(args []Value) (Value, error) {
		return NewBool(IsCallable(args[0])), nil
	}})
	Declare(vars, &Declaration{"null?", "true if the argument is the empty list", 1, 1, func(args []Value) (Value, error) {
		return NewBool(args[0].Kind == KindUnit), nil
	}})
	Declare(vars, &Declaration{"not", "logical negation; only #f is falsy", 1, 1, func(args []Value) (Value, error) {
		return NewBool(!IsTruthy(args[0])), nil
	}})

	Declare(vars, &Declaration{"car", "first element of a pair", 1, 1, func(args []Value) (Value, error) {
		if args[0].Kind != KindPair {
			return Value{}, procError("car", "argument must be a pair")
		}
		return args[0].Pair.First, nil
	}})
	Declare(vars, &Declaration{"cdr", "rest of a pair after its first element", 1, 1, func(args []Value) (Value, error) {
		if args[0].Kind != KindPair {
			return Value{}, procError("cdr", "argument must be a pair")
		}
		return args[0].Pair.Second, nil
	}})
	Declare(vars, &Declaration{"length", "number of elements in a proper list", 1, 1, func(args []Value) (Value, error) {
		if !IsProperList(args[0]) {
			return Value{}, errAllList("length")
		}
		n := int64(0)
		v := args[0]
		for v.Kind == KindPair {
			n++
			v = v.Pair.Second
		}
		return NewInt(n), nil
	}})
	Declare(vars, &Declaration{"append", "concatenates two proper lists, the result's tail sharing the second list", 2, 2, func(args []Value) (Value, error) {
		a, b := args[0], args[1]
		if !IsProperList(a) || !IsProperList(b) {
			return Value{}, errAllList("append")
		}
		return appendShared(a, b), nil
	}})

	Declare(vars, &Declaration{"display", "writes the printed form of its argument, no trailing newline", 1, 1, func(args []Value) (Value, error) {
		fmt.Fprint(Stdout, String(args[0]))
		return NewQuiet(""), nil
	}})
	Declare(vars, &Declaration{"newline", "writes a newline", 0, 0, func(args []Value) (Value, error) {
		fmt.Fprintln(Stdout)
		return NewQuiet(""), nil
	}})

	Declare(vars, &Declaration{"env", "lists top-level bindings and their combined size", 0, 0, func(args []Value) (Value, error) {
		names := env.TopLevelNames()
		var total uint64
		for _, name := range names {
			v, _ := env.Top.vars[name]
			total += valueSize(v, map[*Pair]bool{}, map[*Closure]bool{})
		}
		fmt.Fprintf(Stdout, "%d binding(s), %s\n", len(names), units.HumanSize(float64(total)))
		for _, name := range names {
			fmt.Fprintln(Stdout, name)
		}
		return NewQuiet(""), nil
	}})

	Declare(vars, &Declaration{"help", "lists registered native procedures, or documents one by name", 0, 1, func(args []Value) (Value, error) {
		if len(args) == 0 {
			fmt.Fprintln(Stdout, HelpAll())
			return NewQuiet(""), nil
		}
		if args[0].Kind != KindBuiltin {
			return Value{}, procError("help", "argument must be a native procedure")
		}
		text, err := HelpOne(args[0].Builtin.Name)
		if err != nil {
			return Value{}, err
		}
		fmt.Fprintln(Stdout, text)
		return NewQuiet(""), nil
	}})

	Declare(vars, &Declaration{"size", "byte size of a value's reachable graph, deduplicated by pointer identity", 1, 1, func(args []Value) (Value, error) {
		sz := valueSize(args[0], map[*Pair]bool{}, map[*Closure]bool{})
		return NewInt(int64(sz)), nil
	}})

	return vars
}

// appendShared rebuilds a's spine with fresh pairs and attaches b as the
// final tail unchanged, so the two lists' shared suffix (if any) within b
// is not copied.
func appendShared(a, b Value) Value {
	if a.Kind != KindPair {
		return b
	}
	return NewPair(a.Pair.First, appendShared(a.Pair.Second, b))
}

// valueSize walks v's reachable graph, charging a fixed struct overhead
// per node and deduplicating Pair/Closure pointers so shared structure
// (aliased list tails, self-referential closures) is counted once.
// Closure.Env is deliberately not walked — it may transitively reach the
// entire top-level, which would make a single closure's size unbounded
// (grounded on memcp's ComputeSize treating funcs as flat overhead).
func valueSize(v Value, seenPairs map[*Pair]bool, seenClosures map[*Closure]bool) uint64 {
	const wordSize = 8
	switch v.Kind {
	case KindInt, KindBool, KindUnit:
		return wordSize
	case KindQuiet:
		return wordSize + uint64(len(v.Quiet))
	case KindBuiltin:
		return wordSize * 2
	case KindClosure:
		if seenClosures[v.Closure] {
			return 0
		}
		seenClosures[v.Closure] = true
		return wordSize * uint64(3+len(v.Closure.Params))
	case KindPair:
		if seenPairs[v.Pair] {
			return 0
		}
		seenPairs[v.Pair] = true
		return wordSize*2 + valueSize(v.Pair.First, seenPairs, seenClosures) + valueSize(v.Pair.Second, seenPairs, seenClosures)
	}
	return 0
}
