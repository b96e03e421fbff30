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

import "fmt"

// procError matches the original C++ implementation's
// `procedure `NAME`: MSG` wording (li::interpreter::assert_throw), so a
// builtin's arity/type faults read the same in both.
func procError(name, msg string) error {
	return fmt.Errorf("procedure `%s`: %s", name, msg)
}

func errExactArgs(name string, want, got int) error {
	return procError(name, fmt.Sprintf("expected exactly %d args, got %d", want, got))
}

func errMinArgs(name string, want, got int) error {
	return procError(name, fmt.Sprintf("expected at least %d args, got %d", want, got))
}

func errArgsRange(name string, min, max, got int) error {
	return procError(name, fmt.Sprintf("expected between %d and %d args, got %d", min, max, got))
}

func errAllNumeric(name string) error {
	return procError(name, "all arguments must be numeric")
}

func errAllList(name string) error {
	return procError(name, "argument(s) must be of type list")
}
