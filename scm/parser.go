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
	"strconv"
	"strings"
)

// Status is the result of feeding a chunk of source into the
// tokenizer.
type Status int

const (
	StatusSuccess Status = iota
	StatusIncomplete
	StatusFailure
)

// Tokenizer reads characters and accumulates a token buffer and a
// parenthesis-depth counter across successive Feed calls until Reset —
// the mechanism the REPL uses to gather multiline input.
type Tokenizer struct {
	tokens []string
	depth  int
}

func NewTokenizer() *Tokenizer { return &Tokenizer{} }

func (t *Tokenizer) Reset() {
	t.tokens = nil
	t.depth = 0
}

// Feed tokenizes one chunk of source (typically one line) and appends
// to the pending token buffer. It returns Success once depth has
// returned to zero, Incomplete if more input is needed, or Failure on
// an unmatched `)`.
func (t *Tokenizer) Feed(s string) (Status, error) {
	var token strings.Builder
	flush := func() {
		if token.Len() > 0 {
			t.tokens = append(t.tokens, strings.ToLower(token.String()))
			token.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == ';':
			flush()
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case c == '(':
			flush()
			t.tokens = append(t.tokens, "(")
			t.depth++
		case c == ')':
			flush()
			if t.depth <= 0 {
				return StatusFailure, fmt.Errorf("tokenizer: unable to match `)` to any previous `(`")
			}
			t.tokens = append(t.tokens, ")")
			t.depth--
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			flush()
		default:
			token.WriteRune(c)
		}
	}
	flush()

	if t.depth == 0 {
		return StatusSuccess, nil
	}
	return StatusIncomplete, nil
}

// Tokens returns the pending token buffer.
func (t *Tokenizer) Tokens() []string { return t.tokens }

// Parse parses a complete token sequence into exactly one expression
// covering the whole sequence. An empty token sequence
// parses as Unit (an empty program).
func Parse(tokens []string) (Node, error) {
	if len(tokens) == 0 {
		return &UnitNode{}, nil
	}
	return parseImmediate(tokens, 0, len(tokens))
}

// matchParen returns the index of the `)` matching the `(` at begin.
func matchParen(tokens []string, begin, end int) (int, error) {
	if tokens[begin] != "(" {
		return begin, nil
	}
	depth := 1
	i := begin + 1
	for ; i < end; i++ {
		switch tokens[i] {
		case "(":
			depth++
		case ")":
			depth--
		}
		if depth == 0 {
			break
		}
	}
	if depth != 0 {
		return 0, fmt.Errorf("parser: could not match `(` during immediate parsing")
	}
	return i, nil
}

// splitLevel returns the indices of the beginnings of each immediate
// child element of the parenthesized form tokens[begin:end], plus the
// closing paren index — adjacent pairs thus demarcate sub-expressions.
func splitLevel(tokens []string, begin, end int) ([]int, error) {
	if tokens[begin] != "(" || tokens[end-1] != ")" {
		return nil, fmt.Errorf("parser: could not parse s-expression")
	}
	var indices []int
	i := begin + 1
	for i < end-1 {
		indices = append(indices, i)
		if tokens[i] == "(" {
			m, err := matchParen(tokens, i, end)
			if err != nil {
				return nil, err
			}
			i = m + 1
		} else {
			i++
		}
	}
	indices = append(indices, end-1)
	return indices, nil
}

func isIdentifier(s string) bool {
	if s == "#t" || s == "#f" {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err != nil
}

// buildList right-folds parsed element nodes into a nested PairNode
// chain terminated by Unit (`list`).
func buildList(elems []Node) Node {
	if len(elems) == 0 {
		return &UnitNode{}
	}
	return &PairNode{First: elems[0], Second: buildList(elems[1:])}
}

// parseImmediate parses the token range [begin, end) into exactly one
// AST node, dispatching on the first token of a parenthesized form.
func parseImmediate(tokens []string, begin, end int) (Node, error) {
	if begin >= end {
		return nil, fmt.Errorf("parser: nothing to parse")
	}

	if tokens[begin] != "(" {
		if end-begin != 1 {
			return nil, fmt.Errorf("parser: invalid s-expression")
		}
		return parseAtom(tokens[begin])
	}

	if tokens[end-1] != ")" {
		return nil, fmt.Errorf("parser: encountered malformed s-expression")
	}

	if begin+1 == end-1 {
		return &UnitNode{}, nil
	}

	level, err := splitLevel(tokens, begin, end)
	if err != nil {
		return nil, err
	}
	if len(level) <= 1 {
		return nil, fmt.Errorf("parser: failed to split s-expression")
	}

	head := tokens[level[0]]
	switch head {
	case "cons":
		if len(level) != 4 {
			return nil, fmt.Errorf("cons: illegal syntax")
		}
		first, err := parseImmediate(tokens, level[1], level[2])
		if err != nil {
			return nil, err
		}
		second, err := parseImmediate(tokens, level[2], level[3])
		if err != nil {
			return nil, err
		}
		return &PairNode{First: first, Second: second}, nil

	case "list":
		elems, err := parseSequence(tokens, level, 1)
		if err != nil {
			return nil, err
		}
		return buildList(elems), nil

	case "if":
		if len(level) != 5 {
			return nil, fmt.Errorf("if: illegal syntax")
		}
		pred, err := parseImmediate(tokens, level[1], level[2])
		if err != nil {
			return nil, err
		}
		then, err := parseImmediate(tokens, level[2], level[3])
		if err != nil {
			return nil, err
		}
		els, err := parseImmediate(tokens, level[3], level[4])
		if err != nil {
			return nil, err
		}
		return &CondNode{
			Preds:    []Node{pred, &BoolNode{Val: true}},
			Branches: []Node{then, els},
		}, nil

	case "cond":
		var preds, branches []Node
		for i := 1; i+1 < len(level); i++ {
			pair, err := splitLevel(tokens, level[i], level[i+1])
			if err != nil {
				return nil, err
			}
			if len(pair) != 3 {
				return nil, fmt.Errorf("cond: illegal condition list")
			}
			pred, err := parseImmediate(tokens, pair[0], pair[1])
			if err != nil {
				return nil, err
			}
			body, err := parseImmediate(tokens, pair[1], pair[2])
			if err != nil {
				return nil, err
			}
			preds = append(preds, pred)
			branches = append(branches, body)
		}
		return &CondNode{Preds: preds, Branches: branches}, nil

	case "define":
		if len(level) != 4 {
			return nil, fmt.Errorf("define: illegal syntax")
		}
		if tokens[level[1]] == "(" {
			argIter, err := splitLevel(tokens, level[1], level[2])
			if err != nil {
				return nil, err
			}
			if len(argIter) < 1 {
				return nil, fmt.Errorf("lambda: illegal argument list")
			}
			var params []string
			for i := 1; i+1 < len(argIter); i++ {
				if argIter[i+1]-argIter[i] != 1 {
					return nil, fmt.Errorf("lambda: illegal argument list")
				}
				pname := tokens[argIter[i]]
				if !isIdentifier(pname) {
					return nil, fmt.Errorf("lambda: illegal argument list")
				}
				params = append(params, pname)
			}
			body, err := parseImmediate(tokens, level[2], level[3])
			if err != nil {
				return nil, err
			}
			name := tokens[argIter[0]]
			return &BindNode{
				Name:  name,
				Value: &LambdaNode{Params: params, Body: body, SelfName: name},
			}, nil
		}
		if !isIdentifier(tokens[level[1]]) {
			return nil, fmt.Errorf("define: illegal syntax")
		}
		value, err := parseImmediate(tokens, level[2], level[3])
		if err != nil {
			return nil, err
		}
		return &BindNode{Name: tokens[level[1]], Value: value}, nil

	case "let", "let*":
		if len(level) < 3 {
			return nil, fmt.Errorf("let: illegal syntax")
		}
		pairIter, err := splitLevel(tokens, level[1], level[2])
		if err != nil {
			return nil, err
		}
		var names []string
		var values []Node
		for i := 0; i+1 < len(pairIter); i++ {
			pair, err := splitLevel(tokens, pairIter[i], pairIter[i+1])
			if err != nil {
				return nil, err
			}
			if len(pair) != 3 {
				return nil, fmt.Errorf("let: illegal binding list")
			}
			if !isIdentifier(tokens[pair[0]]) {
				return nil, fmt.Errorf("let: illegal binding list")
			}
			v, err := parseImmediate(tokens, pair[1], pair[2])
			if err != nil {
				return nil, err
			}
			names = append(names, tokens[pair[0]])
			values = append(values, v)
		}
		bodyNodes, err := parseSequence(tokens, level, 2)
		if err != nil {
			return nil, err
		}
		if len(bodyNodes) == 0 {
			return nil, fmt.Errorf("let: missing body")
		}
		return &LetNode{
			Names:  names,
			Values: values,
			Body:   &SeqNode{Seq: bodyNodes},
			Star:   head == "let*",
		}, nil

	case "lambda":
		if len(level) != 4 {
			return nil, fmt.Errorf("lambda: illegal syntax")
		}
		argIter, err := splitLevel(tokens, level[1], level[2])
		if err != nil {
			return nil, err
		}
		var params []string
		for i := 0; i+1 < len(argIter); i++ {
			if argIter[i+1]-argIter[i] != 1 {
				return nil, fmt.Errorf("lambda: illegal argument list")
			}
			name := tokens[argIter[i]]
			if !isIdentifier(name) {
				return nil, fmt.Errorf("lambda: illegal argument list")
			}
			params = append(params, name)
		}
		body, err := parseImmediate(tokens, level[2], level[3])
		if err != nil {
			return nil, err
		}
		return &LambdaNode{Params: params, Body: body}, nil

	case "begin":
		nodes, err := parseSequence(tokens, level, 1)
		if err != nil {
			return nil, err
		}
		return &SeqNode{Seq: nodes}, nil

	case "and":
		nodes, err := parseSequence(tokens, level, 1)
		if err != nil {
			return nil, err
		}
		return &AndNode{Nodes: nodes}, nil

	case "or":
		nodes, err := parseSequence(tokens, level, 1)
		if err != nil {
			return nil, err
		}
		return &OrNode{Nodes: nodes}, nil

	default:
		nodes, err := parseSequence(tokens, level, 0)
		if err != nil {
			return nil, err
		}
		if len(nodes) == 0 {
			return nil, fmt.Errorf("parser: invalid s-expression")
		}
		return &CallNode{Head: nodes[0], Args: nodes[1:]}, nil
	}
}

// parseSequence parses level[startIdx:] as a flat run of sub-expressions,
// where adjacent entries in level demarcate each one.
func parseSequence(tokens []string, level []int, startIdx int) ([]Node, error) {
	var nodes []Node
	for i := startIdx; i+1 < len(level); i++ {
		n, err := parseImmediate(tokens, level[i], level[i+1])
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func parseAtom(tok string) (Node, error) {
	switch tok {
	case "#t":
		return &BoolNode{Val: true}, nil
	case "#f":
		return &BoolNode{Val: false}, nil
	}
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return &IntNode{Val: n}, nil
	} else if looksNumeric(tok) {
		return nil, fmt.Errorf("parser: integer literal `%s` out of range", tok)
	}
	return &VarNode{Name: tok}, nil
}

// looksNumeric distinguishes "all-digits but overflows int64" from
// "not numeric at all", so e.g. `foo` still parses as an identifier
// while `99999999999999999999` is a hard parse error.
func looksNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	i := 0
	if tok[0] == '-' || tok[0] == '+' {
		i = 1
	}
	if i == len(tok) {
		return false
	}
	for ; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}
