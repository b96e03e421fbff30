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

func TestStringFormsMatchCanonicalSyntax(t *testing.T) {
	cases := map[string]string{
		"(list 1 2 3)":        "(1 2 3)",
		"(cons 1 2)":          "(1 . 2)",
		"(cons 1 (cons 2 3))": "(1 2 . 3)",
		"()":                  "()",
		"#t":                  "#t",
		"#f":                  "#f",
		"5":                   "5",
		"(list (list 1 2) 3)": "((1 2) 3)",
	}
	for src, want := range cases {
		v := mustEval(t, src)
		if got := String(v); got != want {
			t.Errorf("%s: got %q, want %q", src, got, want)
		}
	}
}

func TestClosurePrintsLambdaTag(t *testing.T) {
	v := mustEval(t, "(lambda (x y) x)")
	got := String(v)
	if got[:9] != "#<Lambda>" {
		t.Fatalf("expected a #<Lambda> tag, got %q", got)
	}
}

func TestQuietSuppressionIsByPrintedStringNotKind(t *testing.T) {
	// (begin) is Quiet("") and suppresses
	v := mustEval(t, "(begin)")
	if String(v) != "" {
		t.Fatalf("expected empty printed form for empty begin, got %q", String(v))
	}
	// define is Quiet(name) and does NOT suppress
	tok := NewTokenizer()
	tok.Feed("(define q 1)")
	node, _ := Parse(tok.Tokens())
	v, err := node.Eval(NewRootEnv())
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if v.Kind != KindQuiet {
		t.Fatalf("expected Quiet kind")
	}
	if String(v) == "" {
		t.Fatalf("define's Quiet message should print its bound name")
	}
}
