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

import (
	"fmt"

	"github.com/google/btree"
)

// Vars is a name -> Value binding table.
type Vars map[string]Value

// topLevel is the shared, mutable binding table installed by `define`.
// It is kept behind its own type (rather than a bare Vars) so the
// ordered btree index can be maintained alongside the map without
// leaking that bookkeeping into Env itself.
type topLevel struct {
	vars  Vars
	names *btree.BTreeG[string]
}

func newTopLevel() *topLevel {
	return &topLevel{
		vars:  make(Vars),
		names: btree.NewG(32, func(a, b string) bool { return a < b }),
	}
}

func (t *topLevel) insert(name string, v Value) {
	if _, existed := t.vars[name]; !existed {
		t.names.ReplaceOrInsert(name)
	}
	t.vars[name] = v
}

// sortedNames returns the top-level's bindings in ascending order, used
// by the `env` builtin so its output is deterministic across runs —
// Go map iteration order is not.
func (t *topLevel) sortedNames() []string {
	out := make([]string, 0, t.names.Len())
	t.names.Ascend(func(name string) bool {
		out = append(out, name)
		return true
	})
	return out
}

// Env is the three-layer lookup structure: a local frame
// owned by this instance, a shared mutable top-level, and a shared
// immutable builtin table. A child scope (call frame, let body) is
// created by copying the parent's local map only — the top-level and
// builtins pointers are shared by reference, which is what gives
// `define` its global visibility and what lets closures see later
// top-level definitions.
type Env struct {
	Local    Vars
	Top      *topLevel
	Builtins Vars
}

// NewEnv builds the root environment: an empty local frame sitting on
// top of a fresh top-level and the given builtin table.
func NewEnv(builtins Vars) *Env {
	return &Env{
		Local:    make(Vars),
		Top:      newTopLevel(),
		Builtins: builtins,
	}
}

// Child returns a new Env whose local frame is a copy of this Env's
// local frame, sharing this Env's top-level and builtins by reference —
// the starting point for a closure call or a `let`/`let*` body. Copying
// (rather than starting empty) is what makes a lambda nested inside
// another lambda's body still see the outer lambda's already-bound
// parameters once both have been called.
func (e *Env) Child() *Env {
	local := make(Vars, len(e.Local))
	for name, v := range e.Local {
		local[name] = v
	}
	return &Env{
		Local:    local,
		Top:      e.Top,
		Builtins: e.Builtins,
	}
}

// Find looks up name: local frame, then top-level, then builtins —
// first hit wins, so builtins are shadowable by top-level defines and
// by locals.
func (e *Env) Find(name string) (Value, error) {
	if v, ok := e.Local[name]; ok {
		return v, nil
	}
	if v, ok := e.Top.vars[name]; ok {
		return v, nil
	}
	if b, ok := e.Builtins[name]; ok {
		return b, nil
	}
	return Value{}, fmt.Errorf("unbound variable: %s", name)
}

// Insert writes to the top-level if top is set, else to the local
// frame. Existing keys are overwritten; overwriting a top-level key
// simply drops the old Value from the map — Go's GC reclaims it once
// unreachable.
func (e *Env) Insert(name string, v Value, top bool) {
	if top {
		e.Top.insert(name, v)
	} else {
		e.Local[name] = v
	}
}

// TopLevelNames returns the names currently bound at the top level, in
// sorted order, for the `env` builtin.
func (e *Env) TopLevelNames() []string {
	return e.Top.sortedNames()
}
