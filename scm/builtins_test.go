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
	"bytes"
	"strings"
	"testing"
)

func TestPredicates(t *testing.T) {
	cases := map[string]bool{
		"(zero? 0)":        true,
		"(zero? 1)":        false,
		"(boolean? #t)":    true,
		"(boolean? 1)":     false,
		"(integer? 5)":     true,
		"(pair? (cons 1 2))": true,
		"(pair? 5)":        false,
		"(list? (list 1 2))": true,
		"(list? (cons 1 2))": false,
		"(null? ())":       true,
		"(null? (list 1))": false,
		"(procedure? car)": true,
		"(not #f)":         true,
		"(not 0)":          false,
	}
	for src, want := range cases {
		v := mustEval(t, src)
		if v.Kind != KindBool || v.Bool != want {
			t.Errorf("%s: got %s, want %v", src, String(v), want)
		}
	}
}

func TestComparisons(t *testing.T) {
	if v := mustEval(t, "(< 1 2 3)"); !v.Bool {
		t.Errorf("expected #t, got %s", String(v))
	}
	if v := mustEval(t, "(< 1 3 2)"); v.Bool {
		t.Errorf("expected #f, got %s", String(v))
	}
	if v := mustEval(t, "(= 2 2 2)"); !v.Bool {
		t.Errorf("expected #t, got %s", String(v))
	}
}

func TestDisplayWritesToStdout(t *testing.T) {
	old := Stdout
	defer func() { Stdout = old }()
	var buf bytes.Buffer
	Stdout = &buf

	tok := NewTokenizer()
	tok.Feed("(begin (display 42) (newline))")
	node, err := Parse(tok.Tokens())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, err := node.Eval(NewRootEnv()); err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if buf.String() != "42\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestEnvBuiltinListsDefines(t *testing.T) {
	old := Stdout
	defer func() { Stdout = old }()
	var buf bytes.Buffer
	Stdout = &buf

	tok := NewTokenizer()
	tok.Feed("(begin (define x 1) (define y 2) (env))")
	node, err := Parse(tok.Tokens())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, err := node.Eval(NewRootEnv()); err != nil {
		t.Fatalf("eval error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "x") || !strings.Contains(out, "y") {
		t.Fatalf("expected x and y listed, got %q", out)
	}
}

func TestSizeBuiltinEqualForSameShapeLists(t *testing.T) {
	v1 := mustEval(t, "(size (list 1 2 3))")
	v2 := mustEval(t, "(size (cons 1 (cons 1 (cons 1 ()))))")
	if v1.Kind != KindInt || v2.Kind != KindInt {
		t.Fatalf("expected integer sizes")
	}
	if v1.Int != v2.Int {
		t.Fatalf("lists of the same shape should report equal size: %d vs %d", v1.Int, v2.Int)
	}
	if v1.Int <= 0 {
		t.Fatalf("expected positive size, got %d", v1.Int)
	}
}

func TestHelpBuiltinDocumentsNativeProcedure(t *testing.T) {
	old := Stdout
	defer func() { Stdout = old }()
	var buf bytes.Buffer
	Stdout = &buf

	v := mustEval(t, "(help car)")
	if v.Kind != KindQuiet {
		t.Fatalf("expected Quiet result, got %s", String(v))
	}
	if !strings.Contains(buf.String(), "car") {
		t.Fatalf("expected car's documentation, got %q", buf.String())
	}
}

func TestArityErrors(t *testing.T) {
	tok := NewTokenizer()
	tok.Feed("(car)")
	node, _ := Parse(tok.Tokens())
	_, err := node.Eval(NewRootEnv())
	if err == nil {
		t.Fatalf("expected arity error for (car)")
	}
}

func TestUnderSuppliedArithmeticReportsErrorNotPanic(t *testing.T) {
	cases := []string{"(-)", "(/)", "(abs)", "(max)", "(min)", "(expt 2)", "(modulo 5)"}
	for _, src := range cases {
		tok := NewTokenizer()
		tok.Feed(src)
		node, err := Parse(tok.Tokens())
		if err != nil {
			t.Fatalf("%s: parse error: %v", src, err)
		}
		if _, err := node.Eval(NewRootEnv()); err == nil {
			t.Errorf("%s: expected an arity error, got none", src)
		}
	}
}

func TestAppendSharesSecondListTail(t *testing.T) {
	tok := NewTokenizer()
	tok.Feed("(begin (define tail (list 3 4)) (append (list 1 2) tail))")
	node, err := Parse(tok.Tokens())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	env := NewRootEnv()
	if _, err := node.Eval(env); err != nil {
		t.Fatalf("eval error: %v", err)
	}

	tailTok := NewTokenizer()
	tailTok.Feed("(cdr (cdr (append (list 1 2) tail)))")
	tailNode, err := Parse(tailTok.Tokens())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	got, err := tailNode.Eval(env)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	tailVal, err := env.Find("tail")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	if got.Pair != tailVal.Pair {
		t.Fatalf("append should share the second list's tail, got a fresh pair")
	}
}

func TestAppendRejectsWrongArity(t *testing.T) {
	for _, src := range []string{"(append)", "(append (list 1) (list 2) (list 3))"} {
		tok := NewTokenizer()
		tok.Feed(src)
		node, err := Parse(tok.Tokens())
		if err != nil {
			t.Fatalf("%s: parse error: %v", src, err)
		}
		if _, err := node.Eval(NewRootEnv()); err == nil {
			t.Errorf("%s: expected an arity error, got none", src)
		}
	}
}
