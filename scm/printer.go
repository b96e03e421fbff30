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
	"strconv"
	"strings"
)

// String renders v in its canonical printed form.
func String(v Value) string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindBool:
		if v.Bool {
			return "#t"
		}
		return "#f"
	case KindUnit:
		return "()"
	case KindPair:
		return pairString(v.Pair)
	case KindBuiltin:
		return "#<Builtin>: " + v.Builtin.Name
	case KindClosure:
		return closureString(v.Closure)
	case KindQuiet:
		return v.Quiet
	}
	return "?"
}

// pairString mirrors li::interpreter::PairNode::to_string_internal: a
// pair prints as "(A . B)" unless its tail is a proper list, in which
// case it prints in list form. It walks the whole pair spine in one
// pass — not just the immediate Second — so an improper tail several
// cons cells deep (e.g. (cons 1 (cons 2 3)) => "(1 2 . 3)") still gets
// one pair of parens and a single trailing " . TAIL", rather than a
// fresh "(A . B)" at every cons cell along the spine.
func pairString(p *Pair) string {
	var b strings.Builder
	b.WriteByte('(')
	cur := Value{Kind: KindPair, Pair: p}
	first := true
	for cur.Kind == KindPair {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(String(cur.Pair.First))
		cur = cur.Pair.Second
	}
	if cur.Kind != KindUnit {
		b.WriteString(" . ")
		b.WriteString(String(cur))
	}
	b.WriteByte(')')
	return b.String()
}

func closureString(c *Closure) string {
	var b strings.Builder
	b.WriteString("#<Lambda>: [")
	b.WriteString(c.SelfName)
	b.WriteString("] ( ")
	for _, p := range c.Params {
		b.WriteString(p)
		b.WriteByte(' ')
	}
	b.WriteString(") ")
	return b.String()
}
