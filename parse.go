// Copyright 2026 The rowcalc Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rowcalc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/efp"
)

// ParseFormula parses formula text into an expression tree. Tokenization is
// delegated to the efp spreadsheet formula parser; this adapter only shapes
// the token stream into the closed set of node kinds the evaluator
// understands. A leading "=" is accepted and ignored. Parse failures are
// ordinary errors, distinct from evaluation error results.
func ParseFormula(formula string) (*Node, error) {
	formula = strings.TrimPrefix(strings.TrimSpace(formula), "=")
	if formula == "" {
		return nil, fmt.Errorf("empty formula")
	}
	ps := efp.ExcelParser()
	tokens := ps.Parse(formula)
	if tokens == nil {
		return nil, fmt.Errorf("failed to parse formula: %s", formula)
	}
	p := &treeBuilder{tokens: stripNoise(tokens)}
	root, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, fmt.Errorf("unexpected token %q in formula %q", tok.TValue, formula)
	}
	return root, nil
}

// stripNoise drops whitespace and no-op tokens from the token stream.
func stripNoise(tokens []efp.Token) []efp.Token {
	kept := make([]efp.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.TType == efp.TokenTypeWhitespace || tok.TType == efp.TokenTypeNoop {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// treeBuilder is a precedence-climbing builder over an efp token stream.
// Precedence, loosest first: comparison, concatenation, additive,
// multiplicative (including modulo), power (right associative), unary,
// primary.
type treeBuilder struct {
	tokens []efp.Token
	pos    int
}

func (p *treeBuilder) peek() (efp.Token, bool) {
	if p.pos >= len(p.tokens) {
		return efp.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *treeBuilder) next() (efp.Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// infixOp reports whether the next token is an infix operator with one of
// the given symbols, without consuming it.
func (p *treeBuilder) infixOp(symbols ...string) (string, bool) {
	tok, ok := p.peek()
	if !ok || tok.TType != efp.TokenTypeOperatorInfix {
		return "", false
	}
	for _, s := range symbols {
		if tok.TValue == s {
			return s, true
		}
	}
	return "", false
}

func (p *treeBuilder) parseComparison() (*Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.infixOp("=", "<>", ">", "<", ">=", "<=")
		if !ok {
			break
		}
		p.pos++
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		node := newNode(NodeComparison)
		node.Op = op
		node.Children = []*Node{left, right}
		left = node
	}
	return left, nil
}

// parseConcat accepts the & operator so that formulas using it still parse;
// the evaluator reports it as unimplemented.
func (p *treeBuilder) parseConcat() (*Node, error) {
	left, err := p.parseAddition()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.infixOp("&")
		if !ok {
			break
		}
		p.pos++
		right, err := p.parseAddition()
		if err != nil {
			return nil, err
		}
		node := newNode(NodeBinary)
		node.Op = op
		node.Children = []*Node{left, right}
		left = node
	}
	return left, nil
}

func (p *treeBuilder) parseAddition() (*Node, error) {
	left, err := p.parseMultiplication()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.infixOp("+", "-")
		if !ok {
			break
		}
		p.pos++
		right, err := p.parseMultiplication()
		if err != nil {
			return nil, err
		}
		node := newNode(NodeBinary)
		node.Op = op
		node.Children = []*Node{left, right}
		left = node
	}
	return left, nil
}

func (p *treeBuilder) parseMultiplication() (*Node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.infixOp("*", "/")
		if !ok {
			// This dialect has no percent operator: a postfix % token
			// followed by an operand is the infix modulo operator.
			if tok, exists := p.peek(); exists && tok.TType == efp.TokenTypeOperatorPostfix && tok.TValue == "%" {
				p.pos++
				right, err := p.parsePower()
				if err != nil {
					return nil, fmt.Errorf("modulo operator requires a right operand: %w", err)
				}
				node := newNode(NodeBinary)
				node.Op = "%"
				node.Children = []*Node{left, right}
				left = node
				continue
			}
			break
		}
		p.pos++
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		node := newNode(NodeBinary)
		node.Op = op
		node.Children = []*Node{left, right}
		left = node
	}
	return left, nil
}

func (p *treeBuilder) parsePower() (*Node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.infixOp("^"); ok {
		p.pos++
		exp, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		node := newNode(NodeBinary)
		node.Op = "^"
		node.Children = []*Node{base, exp}
		return node, nil
	}
	return base, nil
}

func (p *treeBuilder) parseUnary() (*Node, error) {
	if tok, ok := p.peek(); ok && tok.TType == efp.TokenTypeOperatorPrefix {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		node := newNode(NodeUnary)
		node.Op = tok.TValue
		node.Children = []*Node{operand}
		return node, nil
	}
	return p.parsePrimary()
}

func (p *treeBuilder) parsePrimary() (*Node, error) {
	tok, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("unexpected end of formula")
	}
	switch tok.TType {
	case efp.TokenTypeOperand:
		return operandNode(tok)
	case efp.TokenTypeFunction:
		if tok.TSubType != efp.TokenSubTypeStart {
			return nil, fmt.Errorf("unexpected function token %q", tok.TValue)
		}
		return p.parseFunctionCall(tok.TValue)
	case efp.TokenTypeSubexpression:
		if tok.TSubType != efp.TokenSubTypeStart {
			return nil, fmt.Errorf("unexpected token %q", tok.TValue)
		}
		inner, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		stop, ok := p.next()
		if !ok || stop.TType != efp.TokenTypeSubexpression || stop.TSubType != efp.TokenSubTypeStop {
			return nil, fmt.Errorf("unbalanced parentheses")
		}
		return inner, nil
	}
	return nil, fmt.Errorf("unexpected token %q", tok.TValue)
}

// parseFunctionCall parses the argument list between a function start token
// and its matching stop token.
func (p *treeBuilder) parseFunctionCall(name string) (*Node, error) {
	node := newNode(NodeFunction)
	node.Name = name
	if tok, ok := p.peek(); ok && tok.TType == efp.TokenTypeFunction && tok.TSubType == efp.TokenSubTypeStop {
		p.pos++
		return node, nil
	}
	for {
		arg, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, arg)
		tok, ok := p.next()
		if !ok {
			return nil, fmt.Errorf("unterminated call to %s", name)
		}
		if tok.TType == efp.TokenTypeArgument {
			continue
		}
		if tok.TType == efp.TokenTypeFunction && tok.TSubType == efp.TokenSubTypeStop {
			return node, nil
		}
		return nil, fmt.Errorf("unexpected token %q in call to %s", tok.TValue, name)
	}
}

// operandNode converts an operand token into a literal, cell reference or
// range reference node.
func operandNode(tok efp.Token) (*Node, error) {
	switch tok.TSubType {
	case efp.TokenSubTypeNumber:
		n, err := strconv.ParseFloat(tok.TValue, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number literal %q", tok.TValue)
		}
		return newLiteralNode(newNumberResult(n)), nil
	case efp.TokenSubTypeText:
		return newLiteralNode(newStringResult(tok.TValue)), nil
	case efp.TokenSubTypeLogical:
		return newLiteralNode(newBoolResult(strings.EqualFold(tok.TValue, "TRUE"))), nil
	case efp.TokenSubTypeError:
		return newLiteralNode(newErrorResult(tok.TValue)), nil
	case efp.TokenSubTypeRange:
		if start, end, found := strings.Cut(tok.TValue, ":"); found {
			node := newNode(NodeRangeRef)
			node.Start = start
			node.End = end
			return node, nil
		}
		node := newNode(NodeCellRef)
		node.Ref = tok.TValue
		return node, nil
	}
	return nil, fmt.Errorf("unexpected operand %q", tok.TValue)
}
