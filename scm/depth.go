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

	"github.com/jtolds/gls"
)

// maxCallDepth bounds call-stack growth from user recursion. This
// dialect has no tail-call optimization, so deep recursion grows the
// host stack one apply() frame at a time; without a guard that ends in
// an unrecoverable runtime stack overflow (a process crash) rather than
// the recoverable error the interpreter expects from every evaluator fault.
const maxCallDepth = 8192

var glsMgr = gls.NewContextManager()

const depthKey = "tinyscheme-call-depth"

// withDepthGuard runs fn with this goroutine's call-depth counter
// (stashed via gls, grounded on memcp/scm/scm.go's use of gls for
// per-goroutine state — used here single-threaded, purely to avoid
// threading an extra depth parameter through every apply() call)
// incremented for fn's dynamic extent, turning runaway non-tail
// recursion into the recoverable error the interpreter expects instead of a
// host stack overflow.
func withDepthGuard(fn func() (Value, error)) (Value, error) {
	depth := currentDepth()
	if depth >= maxCallDepth {
		return Value{}, fmt.Errorf("runtime: maximum recursion depth exceeded")
	}
	var result Value
	var err error
	glsMgr.SetValues(gls.Values{depthKey: depth + 1}, func() {
		result, err = fn()
	})
	return result, err
}

func currentDepth() int {
	v, ok := glsMgr.GetValue(depthKey)
	if !ok {
		return 0
	}
	return v.(int)
}
