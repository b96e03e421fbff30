/*
Copyright (C) 2024  Carl-Philip Hänsch

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
	"strings"
)

// Declaration documents one native builtin, for the `help` introspection
// builtin. It carries no behavior of its own —
// Fn does the actual work and is installed into the builtin table
// wrapped in the MinArgs/MaxArgs check (see Declare).
type Declaration struct {
	Name    string
	Desc    string
	MinArgs int
	MaxArgs int // -1 means unbounded
	Fn      func(args []Value) (Value, error)
}

var declarations = make(map[string]*Declaration)
var declarationOrder []string

// Declare registers def both as a callable Builtin in vars and as
// documentation the `help` builtin can later render. The installed
// Builtin enforces def.MinArgs/MaxArgs before def.Fn ever runs, so a
// builtin's own Fn can assume its argument count is already in range —
// the original's `enforce_min_arg_count`/`enforce_arg_exact_count`
// calls at the top of every builtin, hoisted into one place instead of
// repeated per builtin.
func Declare(vars Vars, def *Declaration) {
	if _, exists := declarations[def.Name]; !exists {
		declarationOrder = append(declarationOrder, def.Name)
	}
	declarations[def.Name] = def
	vars[def.Name] = NewBuiltin(&Builtin{Name: def.Name, Fn: arityChecked(def)})
}

// arityChecked wraps def.Fn with the arity check implied by
// def.MinArgs/def.MaxArgs (MaxArgs < 0 means unbounded).
func arityChecked(def *Declaration) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		got := len(args)
		if got < def.MinArgs || (def.MaxArgs >= 0 && got > def.MaxArgs) {
			switch {
			case def.MinArgs == def.MaxArgs:
				return Value{}, errExactArgs(def.Name, def.MinArgs, got)
			case def.MaxArgs < 0:
				return Value{}, errMinArgs(def.Name, def.MinArgs, got)
			default:
				return Value{}, errArgsRange(def.Name, def.MinArgs, def.MaxArgs, got)
			}
		}
		return def.Fn(args)
	}
}

func signature(d *Declaration) string {
	if d.MaxArgs < 0 {
		return fmt.Sprintf("%s: at least %d arg(s) — %s", d.Name, d.MinArgs, d.Desc)
	}
	if d.MinArgs == d.MaxArgs {
		return fmt.Sprintf("%s: %d arg(s) — %s", d.Name, d.MinArgs, d.Desc)
	}
	return fmt.Sprintf("%s: %d-%d arg(s) — %s", d.Name, d.MinArgs, d.MaxArgs, d.Desc)
}

// HelpAll renders the documentation of every registered builtin, in
// registration order, one per line.
func HelpAll() string {
	lines := make([]string, 0, len(declarationOrder))
	for _, name := range declarationOrder {
		lines = append(lines, signature(declarations[name]))
	}
	return strings.Join(lines, "\n")
}

// HelpOne renders a single builtin's documentation, or an error if name
// isn't a registered native procedure (user closures carry no Declaration).
func HelpOne(name string) (string, error) {
	d, ok := declarations[name]
	if !ok {
		return "", fmt.Errorf("help: no documentation for `%s`", name)
	}
	return signature(d), nil
}
