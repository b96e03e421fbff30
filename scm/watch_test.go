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
	"testing"
)

func TestRunSourceWrapsImplicitBegin(t *testing.T) {
	old := Stdout
	defer func() { Stdout = old }()
	var buf bytes.Buffer
	Stdout = &buf

	err := RunSource("(define x 10) (display (* x 2))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "20" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestRunSourcePropagatesEvalError(t *testing.T) {
	err := RunSource("(/ 1 0)")
	if err == nil {
		t.Fatalf("expected division by zero to surface as an error")
	}
}

func TestRunSourcePropagatesParseError(t *testing.T) {
	err := RunSource("(+ 1 2")
	if err == nil {
		t.Fatalf("expected unterminated input to surface as an error")
	}
}
