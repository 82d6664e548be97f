// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// A SyntaxError is an error produced by parsing a malformed expression.
type SyntaxError struct {
	Expr string // The original expression
	Off  int    // Byte offset of the error in Expr
	Msg  string // Error message
}

func (e *SyntaxError) Error() string {
	// Translate byte offset to a rune offset.
	pos := 0
	for i, r := range e.Expr {
		if i >= e.Off {
			break
		}
		if unicode.IsGraphic(r) {
			pos++
		}
	}
	return fmt.Sprintf("syntax error: %s\n\t%s\n\t%*s^", e.Msg, e.Expr, pos, "")
}

type errorTracker struct {
	qOrig string
	err   *SyntaxError
}

func (t *errorTracker) error(q string, msg string) {
	off := len(t.qOrig) - len(q)
	if t.err == nil {
		t.err = &SyntaxError{t.qOrig, off, msg}
	}
}

// A tok is a single token of an arithmetic expression.
type tok struct {
	// Kind is 'n' for a number, 'w' or 'q' for a bare or quoted
	// column name, '^' for "**", an operator character, or 0 for
	// the end-of-string token.
	Kind byte
	Off  int    // Byte offset of the beginning of this token
	Tok  string // Literal token contents; quoted names are unescaped
	Num  float64
}

type tokenizer struct {
	q    string
	errt *errorTracker
}

func newTokenizer(q string) tokenizer {
	return tokenizer{q, &errorTracker{q, nil}}
}

func isOp(ch byte) bool {
	switch ch {
	case '+', '-', '*', '/', '(', ')', ',':
		return true
	}
	return false
}

// Column names may contain '%', as in "cpu%".
func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameRune(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r) || r == '%'
}

func (t *tokenizer) next() (tok, tokenizer) {
	for len(t.q) > 0 {
		r, size := utf8.DecodeRuneInString(t.q)
		switch {
		case unicode.IsSpace(r):
			t.q = t.q[size:]
		case len(t.q) >= 2 && t.q[:2] == "**":
			return t.tok('^', t.q[:2], t.q[2:])
		case isOp(t.q[0]):
			return t.tok(t.q[0], t.q[:1], t.q[1:])
		case t.q[0] == '"':
			return t.quotedName()
		case t.q[0] == '.' || unicode.IsDigit(r):
			return t.number()
		case isNameStart(r):
			return t.name()
		default:
			return t.error("unexpected " + strconv.QuoteRune(r))
		}
	}
	// Add an EOF token. This eliminates the need for lots of
	// bounds checks in the parser and gives the EOF a position.
	return t.tok(0, "", "")
}

// peek returns the next token without consuming it.
func (t *tokenizer) peek() tok {
	tok, _ := t.next()
	return tok
}

// end asserts that t has reached the end of the token stream. If it
// has not, it returns a tokenizer that reports an error.
func (t *tokenizer) end() tokenizer {
	if tok, _ := t.next(); tok.Kind != 0 {
		_, t2 := t.error("unexpected " + strconv.Quote(tok.Tok))
		return t2
	}
	return *t
}

func (t *tokenizer) tok(kind byte, token string, rest string) (tok, tokenizer) {
	off := len(t.errt.qOrig) - len(t.q)
	return tok{kind, off, token, 0}, tokenizer{rest, t.errt}
}

func (t *tokenizer) error(msg string) (tok, tokenizer) {
	t.errt.error(t.q, msg)
	// Move to the end.
	return t.tok(0, "", "")
}

func (t *tokenizer) number() (tok, tokenizer) {
	end := 0
	for end < len(t.q) {
		c := t.q[end]
		if c >= '0' && c <= '9' || c == '.' {
			end++
		} else if (c == 'e' || c == 'E') && end > 0 {
			end++
			if end < len(t.q) && (t.q[end] == '+' || t.q[end] == '-') {
				end++
			}
		} else {
			break
		}
	}
	v, err := strconv.ParseFloat(t.q[:end], 64)
	if err != nil {
		return t.error("malformed number " + strconv.Quote(t.q[:end]))
	}
	tk, next := t.tok('n', t.q[:end], t.q[end:])
	tk.Num = v
	return tk, next
}

func (t *tokenizer) name() (tok, tokenizer) {
	end := len(t.q)
	for i, r := range t.q {
		if !isNameRune(r) {
			end = i
			break
		}
	}
	return t.tok('w', t.q[:end], t.q[end:])
}

func (t *tokenizer) quotedName() (tok, tokenizer) {
	pos := 1 // Skip initial "
	for pos < len(t.q) && (t.q[pos] != '"' || t.q[pos-1] == '\\') {
		pos++
	}
	if pos == len(t.q) {
		return t.error("missing end quote")
	}
	word, err := strconv.Unquote(t.q[:pos+1])
	if err != nil {
		return t.error("bad escape sequence")
	}
	return t.tok('q', word, t.q[pos+1:])
}
