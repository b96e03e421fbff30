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
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
)

const newPrompt = "\033[32m>\033[0m "
const contPrompt = "\033[32m.\033[0m "
const resultPrompt = "\033[31m=\033[0m "

// Repl runs an interactive read-eval-print loop against env, accumulating
// lines into the tokenizer until a complete top-level expression is
// formed. A fault during parsing or evaluation
// prints `error: MSG`, resets the tokenizer, and the loop continues —
// a recoverable fault never ends the session.
func Repl(env *Env, showBanner bool) error {
	sessionID := uuid.New()
	if showBanner {
		fmt.Printf("tinyscheme session %s\nType an expression, or Ctrl-D to exit.\n\n", sessionID)
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:            newPrompt,
		HistoryFile:       "",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()
	l.CaptureExitSignal()

	tok := NewTokenizer()
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if tok.depth == 0 {
				continue
			}
			tok.Reset()
			l.SetPrompt(newPrompt)
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		status, terr := tok.Feed(line + "\n")
		if terr != nil {
			fmt.Println("error:", terr)
			tok.Reset()
			l.SetPrompt(newPrompt)
			continue
		}
		if status == StatusIncomplete {
			l.SetPrompt(contPrompt)
			continue
		}

		node, perr := Parse(tok.Tokens())
		tok.Reset()
		l.SetPrompt(newPrompt)
		if perr != nil {
			fmt.Println("error:", perr)
			continue
		}
		v, eerr := node.Eval(env)
		if eerr != nil {
			fmt.Println("error:", eerr)
			continue
		}
		printed := String(v)
		if printed != "" {
			fmt.Print(resultPrompt)
			fmt.Println(printed)
		}
	}
}
