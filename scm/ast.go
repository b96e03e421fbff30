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
	"strings"
)

// Node is one variant of the AST. Every construct
// knows how to evaluate itself against an environment and how to
// render itself for debugging — the same dual responsibility the
// C++ original's ASTNode::eval/to_string carry, expressed here as a
// closed interface instead of virtual dispatch.
type Node interface {
	Eval(env *Env) (Value, error)
	String() string
}

// IntNode, BoolNode, UnitNode: literals evaluate to themselves.
type IntNode struct{ Val int64 }

func (n *IntNode) Eval(*Env) (Value, error) { return NewInt(n.Val), nil }
func (n *IntNode) String() string           { return fmt.Sprintf("%d", n.Val) }

type BoolNode struct{ Val bool }

func (n *BoolNode) Eval(*Env) (Value, error) { return NewBool(n.Val), nil }
func (n *BoolNode) String() string {
	if n.Val {
		return "#t"
	}
	return "#f"
}

type UnitNode struct{}

func (n *UnitNode) Eval(*Env) (Value, error) { return NewUnit(), nil }
func (n *UnitNode) String() string           { return "()" }

// VarNode looks its name up in the environment.
type VarNode struct{ Name string }

func (n *VarNode) Eval(env *Env) (Value, error) { return env.Find(n.Name) }
func (n *VarNode) String() string                { return "#<Var> " + n.Name }

// BindNode is top-level `define`: evaluate the expression in the
// current environment, install it at the top level, return Quiet(name).
type BindNode struct {
	Name  string
	Value Node
}

func (n *BindNode) Eval(env *Env) (Value, error) {
	v, err := n.Value.Eval(env)
	if err != nil {
		return Value{}, err
	}
	env.Insert(n.Name, v, true)
	return NewQuiet(n.Name), nil
}
func (n *BindNode) String() string {
	return "#<Bind> (" + n.Name + ", " + n.Value.String() + ")"
}

// SeqNode (`begin`) evaluates each child in order, discarding all but
// the last value; empty sequence evaluates to Quiet.
type SeqNode struct{ Seq []Node }

func (n *SeqNode) Eval(env *Env) (Value, error) {
	if len(n.Seq) == 0 {
		return NewQuiet(""), nil
	}
	var v Value
	var err error
	for _, child := range n.Seq {
		v, err = child.Eval(env)
		if err != nil {
			return Value{}, err
		}
	}
	return v, nil
}
func (n *SeqNode) String() string {
	parts := make([]string, len(n.Seq))
	for i, c := range n.Seq {
		parts[i] = c.String()
	}
	return "#<Seq>[ " + strings.Join(parts, ", ") + " ]"
}

// LetNode covers both `let` (Star=false, parallel) and `let*`
// (Star=true, sequential)
type LetNode struct {
	Names  []string
	Values []Node
	Body   Node
	Star   bool
}

func (n *LetNode) Eval(env *Env) (Value, error) {
	current := env.Child()
	for i, name := range n.Names {
		evalEnv := env
		if n.Star {
			evalEnv = current
		}
		v, err := n.Values[i].Eval(evalEnv)
		if err != nil {
			return Value{}, err
		}
		current.Insert(name, v, false)
	}
	return n.Body.Eval(current)
}
func (n *LetNode) String() string {
	tag := "Let"
	if n.Star {
		tag = "Let*"
	}
	parts := make([]string, len(n.Names))
	for i, name := range n.Names {
		parts[i] = "(" + name + ", " + n.Values[i].String() + ")"
	}
	return "#<" + tag + "> (" + strings.Join(parts, ", ") + ")"
}

// CondNode backs both `cond` and the two-arm lowering of `if`: first
// predicate that evaluates truthy wins; no match is Quiet.
type CondNode struct {
	Preds    []Node
	Branches []Node
}

func (n *CondNode) Eval(env *Env) (Value, error) {
	for i, pred := range n.Preds {
		pv, err := pred.Eval(env)
		if err != nil {
			return Value{}, err
		}
		if IsTruthy(pv) {
			return n.Branches[i].Eval(env)
		}
	}
	return NewQuiet(""), nil
}
func (n *CondNode) String() string {
	var b strings.Builder
	b.WriteString("#<Cond>")
	for i := range n.Preds {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(" + n.Preds[i].String() + ", " + n.Branches[i].String() + ")")
	}
	return b.String()
}

// AndNode / OrNode: short-circuiting sequences.
type AndNode struct{ Nodes []Node }

func (n *AndNode) Eval(env *Env) (Value, error) {
	if len(n.Nodes) == 0 {
		return NewBool(true), nil
	}
	var v Value
	var err error
	for _, child := range n.Nodes {
		v, err = child.Eval(env)
		if err != nil {
			return Value{}, err
		}
		if !IsTruthy(v) {
			return v, nil
		}
	}
	return v, nil
}
func (n *AndNode) String() string {
	parts := make([]string, len(n.Nodes))
	for i, c := range n.Nodes {
		parts[i] = c.String()
	}
	return "#<And>[ " + strings.Join(parts, ", ") + " ]"
}

type OrNode struct{ Nodes []Node }

func (n *OrNode) Eval(env *Env) (Value, error) {
	for _, child := range n.Nodes {
		v, err := child.Eval(env)
		if err != nil {
			return Value{}, err
		}
		if IsTruthy(v) {
			return v, nil
		}
	}
	return NewBool(false), nil
}
func (n *OrNode) String() string {
	parts := make([]string, len(n.Nodes))
	for i, c := range n.Nodes {
		parts[i] = c.String()
	}
	return "#<Or>[ " + strings.Join(parts, ", ") + " ]"
}

// PairNode (`cons`) evaluates both operands and builds a Pair value.
type PairNode struct {
	First  Node
	Second Node
}

func (n *PairNode) Eval(env *Env) (Value, error) {
	a, err := n.First.Eval(env)
	if err != nil {
		return Value{}, err
	}
	b, err := n.Second.Eval(env)
	if err != nil {
		return Value{}, err
	}
	return NewPair(a, b), nil
}
func (n *PairNode) String() string {
	return "#<Pair> (" + n.First.String() + " . " + n.Second.String() + ")"
}

// CallNode evaluates the head, then each argument left to right
// (argument evaluation order is observable via `display`),
// then dispatches.
type CallNode struct {
	Head Node
	Args []Node
}

func (n *CallNode) Eval(env *Env) (Value, error) {
	head, err := n.Head.Eval(env)
	if err != nil {
		return Value{}, err
	}
	if !IsCallable(head) {
		return Value{}, fmt.Errorf("runtime: non-callable type cannot be called")
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := a.Eval(env)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	return apply(head, args)
}
func (n *CallNode) String() string {
	parts := make([]string, len(n.Args)+1)
	parts[0] = n.Head.String()
	for i, a := range n.Args {
		parts[i+1] = a.String()
	}
	return "#<Proc>[ " + strings.Join(parts, ", ") + " ]"
}

// LambdaNode evaluates by snapshotting the current environment into a
// fresh Closure — each re-evaluation of the same lambda expression may
// produce a distinct closure, since capture happens at evaluation
// time, not at parse time.
type LambdaNode struct {
	Params   []string
	Body     Node
	SelfName string
}

func (n *LambdaNode) Eval(env *Env) (Value, error) {
	return NewClosure(&Closure{
		Params:   n.Params,
		Body:     n.Body,
		Env:      env.Child(),
		SelfName: n.SelfName,
	}), nil
}
func (n *LambdaNode) String() string {
	return "#<Lambda>: [" + n.SelfName + "] ( " + strings.Join(n.Params, " ") + ") "
}

// apply dispatches a call to a Builtin or a Closure. Closure invocation
// follows the exact arity check, a fresh frame copied from the
// captured environment's local map, parameters bound locally, the
// self-name (if any) bound to the closure itself so recursion doesn't
// need to walk the top level, then the body evaluated in that frame.
func apply(head Value, args []Value) (Value, error) {
	if head.Kind == KindBuiltin {
		return withDepthGuard(func() (Value, error) {
			return head.Builtin.Fn(args)
		})
	}
	c := head.Closure
	if len(args) != len(c.Params) {
		return Value{}, fmt.Errorf("runtime: lambda function requires %d args; called with %d", len(c.Params), len(args))
	}
	return withDepthGuard(func() (Value, error) {
		frame := c.Env.Child()
		for i, p := range c.Params {
			frame.Insert(p, args[i], false)
		}
		if c.SelfName != "" {
			frame.Insert(c.SelfName, NewClosure(c), false)
		}
		return c.Body.Eval(frame)
	})
}
