// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calc

import (
	"fmt"
	"strconv"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokPow
	tokLParen
	tokRParen
	tokInvalid
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer scans canonical text. Anything outside the canonical alphabet
// becomes tokInvalid so the parser can report where it stopped.
type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) && (l.s[l.i] == ' ' || l.s[l.i] == '\t' || l.s[l.i] == '\n' || l.s[l.i] == '\r') {
		l.i++
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	start := l.i
	switch c := l.s[l.i]; {
	case c == '+':
		l.i++
		return token{kind: tokPlus, text: "+", pos: start}
	case c == '-':
		l.i++
		return token{kind: tokMinus, text: "-", pos: start}
	case c == '*':
		if l.i+1 < len(l.s) && l.s[l.i+1] == '*' {
			l.i += 2
			return token{kind: tokPow, text: "**", pos: start}
		}
		l.i++
		return token{kind: tokStar, text: "*", pos: start}
	case c == '/':
		l.i++
		return token{kind: tokSlash, text: "/", pos: start}
	case c == '%':
		l.i++
		return token{kind: tokPercent, text: "%", pos: start}
	case c == '(':
		l.i++
		return token{kind: tokLParen, text: "(", pos: start}
	case c == ')':
		l.i++
		return token{kind: tokRParen, text: ")", pos: start}
	case isDigit(rune(c)) || c == '.':
		for l.i < len(l.s) && (isDigit(rune(l.s[l.i])) || l.s[l.i] == '.') {
			l.i++
		}
		return token{kind: tokNumber, text: l.s[start:l.i], pos: start}
	case isLetter(rune(c)):
		for l.i < len(l.s) && (isLetter(rune(l.s[l.i])) || isDigit(rune(l.s[l.i]))) {
			l.i++
		}
		return token{kind: tokIdent, text: l.s[start:l.i], pos: start}
	}

	l.i++
	for l.i < len(l.s) && l.s[l.i] >= 0x80 && l.s[l.i] < 0xC0 {
		l.i++
	}
	return token{kind: tokInvalid, text: l.s[start:l.i], pos: start}
}

type parser struct {
	l        lexer
	cur      token
	variable string
}

// parse builds the AST for canonical text. variable, when non-empty, is the
// one identifier allowed to appear without a call.
func parse(canonical, variable string) (node, error) {
	p := &parser{l: lexer{s: canonical}, variable: variable}
	p.next()
	if p.cur.kind == tokEOF {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, p.unexpected()
	}
	return n, nil
}

func (p *parser) next() { p.cur = p.l.next() }

func (p *parser) unexpected() error {
	if p.cur.kind == tokEOF {
		return fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	return fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, p.cur.text, p.cur.pos)
}

// sum := product (("+" | "-") product)*
func (p *parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

// product := power (("*" | "/" | "%") power)*
func (p *parser) parseProduct() (node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokStar || p.cur.kind == tokSlash || p.cur.kind == tokPercent {
		op := p.cur.text[0]
		p.next()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

// power := unary ("**" power)?
//
// Right-associative: 2**3**2 is 2**(3**2). The base is a unary so that
// -2**2 is (-2)**2.
func (p *parser) parsePower() (node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return nodeBinary{op: '^', left: base, right: exp}, nil
}

// unary := ("-" | "+") unary | primary
func (p *parser) parseUnary() (node, error) {
	switch p.cur.kind {
	case tokMinus:
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return nodeNeg{x: x}, nil
	case tokPlus:
		p.next()
		return p.parseUnary()
	}
	return p.parsePrimary()
}

// primary := number | ident "(" sum ")" | variable | "(" sum ")"
func (p *parser) parsePrimary() (node, error) {
	switch p.cur.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(p.cur.text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrSyntax, p.cur.text)
		}
		p.next()
		return nodeNumber{v: v}, nil

	case tokIdent:
		name := p.cur.text
		p.next()
		if p.cur.kind != tokLParen {
			if p.variable != "" && name == p.variable {
				return nodeVar{}, nil
			}
			return nil, fmt.Errorf("%w: %q", ErrUnknownIdent, name)
		}
		fn, ok := builtins[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownIdent, name)
		}
		p.next()
		if p.cur.kind == tokRParen {
			return nil, fmt.Errorf("%w: %s() needs one argument", ErrSyntax, name)
		}
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, p.unexpected()
		}
		p.next()
		return nodeCall{name: name, fn: fn, arg: arg}, nil

	case tokLParen:
		p.next()
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, p.unexpected()
		}
		p.next()
		return inner, nil
	}
	return nil, p.unexpected()
}
