/*
Copyright (C) 2023, 2024  Carl-Philip Hänsch

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
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cph-lisc/tinyscheme/scm"
)

func main() {
	watch := flag.Bool("watch", false, "re-evaluate the given file whenever it changes on disk")
	banner := flag.Bool("banner", true, "print the startup banner before entering the REPL")
	flag.Parse()
	args := flag.Args()

	switch {
	case *watch:
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "usage: tinyscheme -watch FILE")
			os.Exit(1)
		}
		if err := scm.Watch(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}

	case len(args) == 1:
		// Opening the file is the unrecoverable half (bad path, permissions):
		// stderr and a nonzero exit. Once open, any parse/eval fault is
		// recoverable and belongs to runBatch's stdout `error:` convention
		// with exit 0.
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		defer f.Close()
		runBatch(f)

	case len(args) > 1:
		fmt.Fprintln(os.Stderr, "usage: tinyscheme [-watch] [FILE]")
		os.Exit(1)

	default:
		if stat, statErr := os.Stdin.Stat(); statErr == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
			// stdin is a pipe or redirected file, not a terminal: read it
			// whole as one program instead of opening the REPL.
			runBatch(os.Stdin)
			return
		}
		env := scm.NewRootEnv()
		if err := scm.Repl(env, *banner); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}
}

// runBatch evaluates r as one program and reports a parse/eval fault with
// `error: MSG` on stdout, process exit code 0. Only invocation-level
// faults (bad args, unreadable file) exit nonzero, and those are handled
// by the caller before runBatch is reached.
func runBatch(r io.Reader) {
	if err := scm.RunReader(r); err != nil {
		fmt.Println("error:", err)
	}
}
