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

import "testing"

func TestEnvLocalShadowsTopShadowsBuiltins(t *testing.T) {
	env := NewRootEnv()
	env.Insert("car", NewInt(1), true) // shadow the builtin at top level
	v, err := env.Find("car")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindInt || v.Int != 1 {
		t.Fatalf("expected top-level shadow to win, got %s", String(v))
	}

	child := env.Child()
	child.Insert("car", NewInt(2), false)
	v, err = child.Find("car")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindInt || v.Int != 2 {
		t.Fatalf("expected local shadow to win, got %s", String(v))
	}

	// the parent's top-level binding is untouched by the child's local one
	v, err = env.Find("car")
	if err != nil || v.Kind != KindInt || v.Int != 1 {
		t.Fatalf("parent top-level binding should be unaffected by child local insert")
	}
}

func TestChildSharesTopLevelWithParent(t *testing.T) {
	env := NewRootEnv()
	child := env.Child()
	child.Insert("shared", NewInt(7), true)

	v, err := env.Find("shared")
	if err != nil {
		t.Fatalf("parent should see child's top-level define: %v", err)
	}
	if v.Kind != KindInt || v.Int != 7 {
		t.Fatalf("got %s", String(v))
	}
}

func TestTopLevelNamesSorted(t *testing.T) {
	env := NewRootEnv()
	env.Insert("zeta", NewInt(1), true)
	env.Insert("alpha", NewInt(2), true)
	env.Insert("mu", NewInt(3), true)

	names := env.TopLevelNames()
	if len(names) != 3 {
		t.Fatalf("expected 3 names, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestUnboundVariableMessage(t *testing.T) {
	env := NewRootEnv()
	_, err := env.Find("nope")
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "unbound variable: nope" {
		t.Fatalf("unexpected message: %v", err)
	}
}
