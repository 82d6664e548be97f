// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expr implements a small arithmetic language over named
// numeric columns.
//
// An expression combines numbers and column names with +, -, *, /,
// ** (power), unary minus, and parentheses, and may call one of a
// fixed set of functions: log, log2, log10, sqrt, abs. Column names
// that are not plain identifiers may be written as quoted strings,
// such as "cpu%" or "max resident set". Nothing else is evaluated.
package expr

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// An Env supplies the value of a named column.
type Env func(name string) (float64, bool)

// A Node is a node in an expression tree.
type Node interface {
	// Eval evaluates the expression with column values from env.
	Eval(env Env) (float64, error)
	String() string
}

// A Num is a numeric literal.
type Num struct {
	Val float64
}

func (n *Num) Eval(Env) (float64, error) { return n.Val, nil }
func (n *Num) String() string            { return strconv.FormatFloat(n.Val, 'g', -1, 64) }

// A Col is a reference to a column.
type Col struct {
	Name string
	Off  int // Byte offset in the original expression
}

func (n *Col) Eval(env Env) (float64, error) {
	v, ok := env(n.Name)
	if !ok {
		return 0, fmt.Errorf("unknown column %q", n.Name)
	}
	return v, nil
}

func (n *Col) String() string {
	for _, r := range n.Name {
		if !isNameRune(r) {
			return strconv.Quote(n.Name)
		}
	}
	return n.Name
}

// A Neg is a unary negation.
type Neg struct {
	X Node
}

func (n *Neg) Eval(env Env) (float64, error) {
	x, err := n.X.Eval(env)
	return -x, err
}

func (n *Neg) String() string { return "-" + n.X.String() }

// A Binary is an arithmetic operation. Op is one of '+', '-', '*',
// '/', or '^' for exponentiation.
type Binary struct {
	Op   byte
	X, Y Node
}

func (n *Binary) Eval(env Env) (float64, error) {
	x, err := n.X.Eval(env)
	if err != nil {
		return 0, err
	}
	y, err := n.Y.Eval(env)
	if err != nil {
		return 0, err
	}
	switch n.Op {
	case '+':
		return x + y, nil
	case '-':
		return x - y, nil
	case '*':
		return x * y, nil
	case '/':
		return x / y, nil
	case '^':
		return math.Pow(x, y), nil
	}
	panic("bad operator " + string(n.Op))
}

func (n *Binary) String() string {
	op := string(n.Op)
	if n.Op == '^' {
		op = "**"
	}
	return "(" + n.X.String() + " " + op + " " + n.Y.String() + ")"
}

// A Call applies one of the built-in functions.
type Call struct {
	Fn  string
	Arg Node
}

var funcs = map[string]func(float64) float64{
	"abs":   math.Abs,
	"log":   math.Log,
	"log2":  math.Log2,
	"log10": math.Log10,
	"sqrt":  math.Sqrt,
}

func (n *Call) Eval(env Env) (float64, error) {
	x, err := n.Arg.Eval(env)
	if err != nil {
		return 0, err
	}
	return funcs[n.Fn](x), nil
}

func (n *Call) String() string { return n.Fn + "(" + n.Arg.String() + ")" }

// Cols returns the sorted, distinct column names referenced by n.
func Cols(n Node) []string {
	set := make(map[string]bool)
	var walk func(n Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Col:
			set[n.Name] = true
		case *Neg:
			walk(n.X)
		case *Binary:
			walk(n.X)
			walk(n.Y)
		case *Call:
			walk(n.Arg)
		}
	}
	walk(n)
	cols := make([]string, 0, len(set))
	for c := range set {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// funcNames returns the built-in function names for error messages.
func funcNames() string {
	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
