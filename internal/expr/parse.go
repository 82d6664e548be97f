// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import "strconv"

// Parse parses an arithmetic expression into a Node tree.
func Parse(q string) (Node, error) {
	toks := newTokenizer(q)
	p := parser{}
	n, toks := p.expr(toks)
	toks.end()
	if toks.errt.err != nil {
		return nil, toks.errt.err
	}
	return n, nil
}

type parser struct{}

func (p *parser) error(toks tokenizer, msg string) tokenizer {
	_, toks = toks.error(msg)
	return toks
}

// expr = term {("+" | "-") term}
func (p *parser) expr(toks tokenizer) (Node, tokenizer) {
	var x Node
	x, toks = p.term(toks)
	for {
		op, rest := toks.next()
		if op.Kind != '+' && op.Kind != '-' {
			return x, toks
		}
		var y Node
		y, toks = p.term(rest)
		x = &Binary{op.Kind, x, y}
	}
}

// term = unary {("*" | "/") unary}
func (p *parser) term(toks tokenizer) (Node, tokenizer) {
	var x Node
	x, toks = p.unary(toks)
	for {
		op, rest := toks.next()
		if op.Kind != '*' && op.Kind != '/' {
			return x, toks
		}
		var y Node
		y, toks = p.unary(rest)
		x = &Binary{op.Kind, x, y}
	}
}

// unary = ("-" | "+") unary | power
func (p *parser) unary(toks tokenizer) (Node, tokenizer) {
	op, rest := toks.next()
	switch op.Kind {
	case '-':
		x, rest := p.unary(rest)
		return &Neg{x}, rest
	case '+':
		return p.unary(rest)
	}
	return p.power(toks)
}

// power = primary ["**" unary]
//
// Exponentiation is right-associative and binds tighter than a unary
// minus on its left, so -2**2 is -4.
func (p *parser) power(toks tokenizer) (Node, tokenizer) {
	var x Node
	x, toks = p.primary(toks)
	op, rest := toks.next()
	if op.Kind != '^' {
		return x, toks
	}
	y, rest := p.unary(rest)
	return &Binary{'^', x, y}, rest
}

// primary = number | name | name "(" expr ")" | "(" expr ")"
func (p *parser) primary(start tokenizer) (Node, tokenizer) {
	tok, rest := start.next()
	switch tok.Kind {
	case 'n':
		return &Num{tok.Num}, rest
	case 'q':
		return &Col{tok.Tok, tok.Off}, rest
	case 'w':
		if rest.peek().Kind != '(' {
			return &Col{tok.Tok, tok.Off}, rest
		}
		if _, ok := funcs[tok.Tok]; !ok {
			return nil, p.error(start, "unknown function "+strconv.Quote(tok.Tok)+"; want one of "+funcNames())
		}
		_, rest = rest.next()
		arg, rest := p.expr(rest)
		if closing, rest2 := rest.next(); closing.Kind == ')' {
			return &Call{tok.Tok, arg}, rest2
		}
		return nil, p.error(rest, "missing \")\"")
	case '(':
		x, rest := p.expr(rest)
		if closing, rest2 := rest.next(); closing.Kind == ')' {
			return x, rest2
		}
		return nil, p.error(rest, "missing \")\"")
	case 0:
		return nil, p.error(start, "unexpected end of expression")
	}
	return nil, p.error(start, "unexpected "+strconv.Quote(tok.Tok))
}
