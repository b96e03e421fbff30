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
	"io"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFile parses and evaluates the whole contents of filename (wrapped
// in an implicit top-level sequence) against a
// fresh root environment, printing any non-empty result of the final
// top-level form.
func RunFile(filename string) error {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return RunSource(string(bytes))
}

// RunReader evaluates the whole of r as one program — the piped-stdin
// counterpart to RunFile, used when stdin is not an interactive
// terminal.
func RunReader(r io.Reader) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return RunSource(string(src))
}

// RunSource evaluates src as a sequence of top-level forms wrapped in an
// implicit `(begin ...)`, mirroring the original batch driver's literal
// string-wrapping of the whole file before tokenizing.
func RunSource(src string) error {
	tok := NewTokenizer()
	status, err := tok.Feed("(begin " + src + "\n)")
	if err != nil {
		return err
	}
	if status != StatusSuccess {
		return fmt.Errorf("tokenizer: unexpected end of input")
	}
	node, err := Parse(tok.Tokens())
	if err != nil {
		return err
	}
	env := NewRootEnv()
	v, err := node.Eval(env)
	if err != nil {
		return err
	}
	if printed := String(v); printed != "" {
		fmt.Fprintln(Stdout, printed)
	}
	return nil
}

// Watch evaluates filename once, then re-evaluates it from scratch
// (against a fresh environment, so stale top-level defines never leak
// across reloads) every time it changes on disk, until the process is
// interrupted. Evaluation faults are reported to stderr and do not stop
// the watch (grounded on memcp's root main.go getWatch helper, adapted
// here to reload the whole program instead of invoking a callback).
func Watch(filename string) error {
	reread := func() {
		if err := RunFile(filename); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}
	reread()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filename); err != nil {
		return err
	}

	for {
		select {
		case _, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			for {
				time.Sleep(10 * time.Millisecond)
				select {
				case <-watcher.Events:
					continue
				default:
				}
				break
			}
			reread()
			watcher.Add(filename) // some editors replace the file on save
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "watch error:", werr)
		}
	}
}
