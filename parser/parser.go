/*
 * condex
 *
 * Copyright 2026 The condex Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"strconv"
	"strings"

	"github.com/dathos/condex/util"
)

/*
expectState gates how the next token on the current line is interpreted.
Mirrors the expectation automaton in the component design, generalized
where the automaton's literal wording conflicts with valid single-line
scope syntax (see handleScopeBodyContinuation below).
*/
type expectState int

const (
	stateInitial expectState = iota
	stateAssignColon
	stateExprVal
	stateExprOp
	stateParenContents
	stateScopeRet
	stateAfterScopeEcho
)

/*
Parser incrementally grows a Tree from lines of source text. It owns the
three stacks from the component design: actives (insertion targets),
constructs (the subset opened by (, [ or ?) and scopes (open SCOPE node
indices, for scope signature computation).
*/
type Parser struct {
	Tree  *Tree
	Diags *util.Diagnostics

	actives    []int
	constructs map[int]bool
	scopeStack []int

	expect  expectState
	lline   int
	curLine string
	fatal   bool
}

/*
NewParser creates a Parser with a fresh Tree rooted at a SEQ node.
*/
func NewParser(diags *util.Diagnostics) *Parser {
	return &Parser{
		Tree:       NewTree(),
		Diags:      diags,
		actives:    []int{0},
		constructs: map[int]bool{},
		scopeStack: []int{0},
	}
}

func (p *Parser) top() int {
	return p.actives[len(p.actives)-1]
}

func (p *Parser) topNode() *Node {
	return p.Tree.Node(p.top())
}

func (p *Parser) topConstruct() int {
	for i := len(p.actives) - 1; i >= 0; i-- {
		if p.constructs[p.actives[i]] {
			return p.actives[i]
		}
	}
	return -1
}

func (p *Parser) scopeSig() string {
	parts := make([]string, len(p.scopeStack))
	for i, v := range p.scopeStack {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

/*
open creates a node as a child of the current active top, pushes it onto
the active stack and, if construct is true, onto the construct set too.
*/
func (p *Parser) open(kind NodeKind, construct bool) *Node {
	n := p.Tree.Add(p.top(), kind, p.lline, p.scopeSig())
	p.actives = append(p.actives, n.Index)
	if construct {
		p.constructs[n.Index] = true
	}
	if kind == SCOPE {
		p.scopeStack = append(p.scopeStack, n.Index)
	}
	return n
}

/*
leaf creates a childless node (LVALUE, VALUE or OP) under the current
active top without making it an insertion target.
*/
func (p *Parser) leaf(kind NodeKind, tok Token) *Node {
	n := p.Tree.Add(p.top(), kind, p.lline, p.scopeSig())
	n.Token = tok
	return n
}

/*
concludeOnce pops the topmost active. If it was a construct it is also
dropped from the construct set; if it was a SCOPE its index is popped off
the scope stack (reclamation of its locals is an executor concern).
*/
func (p *Parser) concludeOnce() *Node {
	idx := p.actives[len(p.actives)-1]
	p.actives = p.actives[:len(p.actives)-1]
	n := p.Tree.Node(idx)
	delete(p.constructs, idx)
	if n.Kind == SCOPE {
		p.scopeStack = p.scopeStack[:len(p.scopeStack)-1]
	}
	return n
}

/*
rebaseTo pops actives (without popping target itself) until target is the
top of the active stack.
*/
func (p *Parser) rebaseTo(target int) {
	for p.top() != target {
		p.concludeOnce()
	}
}

/*
concludeConstruct pops actives, inclusive, until the node popped is the
given construct's own index.
*/
func (p *Parser) concludeConstruct(target int) *Node {
	for {
		n := p.concludeOnce()
		if n.Index == target {
			return n
		}
	}
}

func (p *Parser) warnf(format string, args ...interface{}) {
	p.Diags.Warnf(p.lline, p.curLine, format, args...)
}

func (p *Parser) fatalf(format string, args ...interface{}) {
	p.Diags.Fatalf(p.lline, p.curLine, format, args...)
	p.fatal = true
}

var noToken = Token{Kind: -1}

func peek(toks []Token, idx int) Token {
	if idx < 0 || idx >= len(toks) {
		return noToken
	}
	return toks[idx]
}

func isValueStart(k TokenKind) bool {
	return k == GNAME || k == LNAME || k == NUMBER
}

func isIdentKind(k TokenKind) bool {
	return k == GNAME || k == LNAME
}

/*
isScopeBodySEQ reports whether idx is the SEQ that is a scope's RETURN's
sole child, i.e. the insertion point for a scope's body statements.
*/
func (p *Parser) isScopeBodySEQ(idx int) bool {
	n := p.Tree.Node(idx)
	if n.Kind != SEQ || n.Parent < 0 {
		return false
	}
	return p.Tree.Node(n.Parent).Kind == RETURN
}

/*
ParseLine feeds one line of source text into the parser, growing the
shared Tree. Multi-line constructs (an open CYCLE, CONDEX, SCOPE or
parenthesized EXPR) persist across calls via the active/construct stacks.
Fatal diagnostics abandon the rest of the line; the caller should stop
feeding further lines once Diags.HasFatal() is true.
*/
func (p *Parser) ParseLine(line string, lline int) {
	p.lline = lline
	p.curLine = line
	p.fatal = false
	p.expect = stateInitial

	toks := Lex(line, lline, p.Diags)

	index := 0
	for index < len(toks) {
		tok := toks[index]

		switch p.expect {
		case stateInitial:
			switch {
			case isIdentKind(tok.Kind):
				if p.isScopeBodySEQ(p.top()) && peek(toks, index+1).Kind != COLON {
					// Closing echo of a scope's return name: consumed, no
					// node created.
					p.expect = stateAfterScopeEcho
					index++
					continue
				}
				p.open(ASSIGN, false)
				p.leaf(LVALUE, tok)
				p.expect = stateAssignColon
				index++
			case tok.Kind == RPAREN || tok.Kind == RBRACK:
				// Closer continuing a construct opened on a previous line;
				// reprocess the same token under EXPR_OP.
				p.expect = stateExprOp
			case tok.Kind == COLON:
				// Bare colon continuing a construct opened on a previous
				// line (e.g. a cycle's predicate on one line, its body
				// introduced by ":" on the next).
				p.handleColon()
				if p.fatal {
					return
				}
				index++
			default:
				p.fatalf("Expected assignment")
				return
			}

		case stateAssignColon:
			if tok.Kind == COLON {
				p.open(EXPR, false)
				p.expect = stateExprVal
				index++
			} else {
				p.fatalf("Expected assignment")
				return
			}

		case stateExprVal:
			switch {
			case isValueStart(tok.Kind):
				p.leaf(VALUE, tok)
				p.expect = stateExprOp
				index++
			case tok.Kind == LPAREN:
				p.expect = stateParenContents
				index++
			case tok.Kind == LBRACK:
				c := p.open(CYCLE, true)
				pr := p.open(PREDICATE, false)
				pr.Test = GreaterThanZero
				pr.TakenTarget = c.Index
				pr.NotTakenTarget = NoTarget
				p.open(EXPR, false)
				p.expect = stateExprVal
				index++
			case tok.Kind == QUOI:
				cx := p.open(CONDEX, true)
				ifn := p.open(IF, false)
				pr := p.open(PREDICATE, false)
				pr.Test = GreaterThanZero
				pr.TakenTarget = cx.Index
				pr.NotTakenTarget = ifn.Index
				p.open(EXPR, false)
				p.expect = stateExprVal
				index++
			default:
				p.fatalf("Malformed expression")
				return
			}

		case stateParenContents:
			if tok.Kind == AT {
				p.open(SCOPE, true)
				p.expect = stateScopeRet
				index++
			} else {
				p.open(EXPR, true)
				p.expect = stateExprVal
				// reprocess this token as the start of a value
			}

		case stateScopeRet:
			if isIdentKind(tok.Kind) {
				ret := p.open(RETURN, false)
				ret.Token = tok
				p.open(SEQ, false)
				index++
				if peek(toks, index).Kind == COLON {
					// Double duty: the return name is also this first
					// statement's LVALUE.
					p.open(ASSIGN, false)
					p.leaf(LVALUE, tok)
					p.expect = stateAssignColon
				} else {
					p.expect = stateInitial
				}
			} else {
				p.fatalf("Expected a return name after (@")
				return
			}

		case stateAfterScopeEcho:
			if tok.Kind == RPAREN {
				p.expect = stateExprOp
				// reprocess the same token under EXPR_OP's closer rule
			} else {
				p.fatalf("Trailing tokens after a scope's return")
				return
			}

		case stateExprOp:
			switch {
			case tok.Kind == PLUS || tok.Kind == MINUS:
				p.leaf(OP, tok)
				p.expect = stateExprVal
				index++

			case tok.Kind == RPAREN:
				p.closeParen()
				if p.fatal {
					return
				}
				index++

			case tok.Kind == RBRACK:
				p.closeBrack()
				if p.fatal {
					return
				}
				index++

			case tok.Kind == COLON:
				p.handleColon()
				if p.fatal {
					return
				}
				index++

			case tok.Kind == QUOI:
				p.handleQuoiSeparator()
				if p.fatal {
					return
				}
				index++

			case tok.Kind == SEMI:
				p.handleSemiSeparator()
				if p.fatal {
					return
				}
				index++

			case tok.Kind == LPAREN || tok.Kind == LBRACK:
				if !p.handleMissingColon() {
					p.fatalf("Unexpected opener")
					return
				}
				// reprocess same token at EXPR_VAL

			case isIdentKind(tok.Kind):
				switch p.handleScopeBodyContinuation(toks, index) {
				case scopeContinuationNewStatement:
					p.expect = stateInitial
					// reprocess same token at INITIAL
				case scopeContinuationEcho:
					p.expect = stateAfterScopeEcho
					index++
				case scopeContinuationError:
					return
				}

			default:
				p.fatalf("Malformed expression")
				return
			}
		}
	}

	p.endOfLineRebase()
}

/*
closeParen implements the RPAREN closer rule: auto-close any top CONDEX
constructs, then the topmost construct must be EXPR or SCOPE.
*/
func (p *Parser) closeParen() {
	for {
		c := p.topConstruct()
		if c < 0 || p.Tree.Node(c).Kind != CONDEX {
			break
		}
		p.concludeConstruct(c)
	}
	c := p.topConstruct()
	if c < 0 || (p.Tree.Node(c).Kind != EXPR && p.Tree.Node(c).Kind != SCOPE) {
		p.fatalf("Unexpected closer ')'")
		return
	}
	p.concludeConstruct(c)
	p.expect = stateExprOp
}

/*
closeBrack implements the RBRACK closer rule: auto-close any top CONDEX
constructs, then the topmost construct must be CYCLE.
*/
func (p *Parser) closeBrack() {
	for {
		c := p.topConstruct()
		if c < 0 || p.Tree.Node(c).Kind != CONDEX {
			break
		}
		p.concludeConstruct(c)
	}
	c := p.topConstruct()
	if c < 0 || p.Tree.Node(c).Kind != CYCLE {
		p.fatalf("Unexpected closer ']'")
		return
	}
	p.concludeConstruct(c)
	p.expect = stateExprOp
}

/*
handleColon implements the COLON-inside-a-construct rule.
*/
func (p *Parser) handleColon() {
	c := p.topConstruct()
	if c < 0 {
		p.fatalf("Colon found in non-cyclic expression")
		return
	}
	switch p.Tree.Node(c).Kind {
	case CYCLE:
		p.rebaseTo(c)
		p.open(EXPR, false)
		p.expect = stateExprVal
	case CONDEX:
		arm := p.currentArm(c)
		if p.Tree.Node(arm).Kind == ELSE {
			p.fatalf("Colon found in else arm")
			return
		}
		p.rebaseTo(arm)
		p.open(EXPR, false)
		p.expect = stateExprVal
	default:
		p.fatalf("Colon found in non-cyclic expression")
	}
}

func (p *Parser) currentArm(condex int) int {
	children := p.Tree.Node(condex).Children
	return children[len(children)-1]
}

/*
handleQuoiSeparator opens a new IF arm inside the enclosing CONDEX.
*/
func (p *Parser) handleQuoiSeparator() {
	c := p.topConstruct()
	if c < 0 || p.Tree.Node(c).Kind != CONDEX {
		p.fatalf("'?' found outside a conditional expression")
		return
	}
	p.rebaseTo(c)
	ifn := p.open(IF, false)
	pr := p.open(PREDICATE, false)
	pr.Test = GreaterThanZero
	pr.TakenTarget = c
	pr.NotTakenTarget = ifn.Index
	p.open(EXPR, false)
	p.expect = stateExprVal
}

/*
handleSemiSeparator opens the terminal ELSE arm inside the enclosing
CONDEX.
*/
func (p *Parser) handleSemiSeparator() {
	c := p.topConstruct()
	if c < 0 || p.Tree.Node(c).Kind != CONDEX {
		p.fatalf("';' found outside a conditional expression")
		return
	}
	p.rebaseTo(c)
	p.open(ELSE, false)
	p.open(EXPR, false)
	p.expect = stateExprVal
}

/*
handleMissingColon recovers from a LPAREN/LBRACK appearing where a COLON
was expected inside a CYCLE or CONDEX arm: treat it as if the COLON had
been seen, with a warning, and reprocess the opener at EXPR_VAL.
*/
func (p *Parser) handleMissingColon() bool {
	c := p.topConstruct()
	if c < 0 {
		return false
	}
	switch p.Tree.Node(c).Kind {
	case CYCLE:
		p.warnf("Missing colon before cycle body")
		p.rebaseTo(c)
		p.open(EXPR, false)
		p.expect = stateExprVal
		return true
	case CONDEX:
		arm := p.currentArm(c)
		if p.Tree.Node(arm).Kind == ELSE {
			return false
		}
		p.warnf("Missing colon before condex arm body")
		p.rebaseTo(arm)
		p.open(EXPR, false)
		p.expect = stateExprVal
		return true
	}
	return false
}

type scopeContinuationAction int

const (
	scopeContinuationNewStatement scopeContinuationAction = iota
	scopeContinuationEcho
	scopeContinuationError
)

/*
handleScopeBodyContinuation handles a bare identifier appearing where only
an operator or closer was expected (EXPR_OP). This can only legally occur
directly inside a scope's body SEQ: it concludes the statement just
parsed and either starts a fresh assignment (identifier followed by
COLON) or is the scope's closing echo of its return name (identifier not
followed by COLON). See SPEC_FULL.md's scope grammar notes for the
grounding of this rule, which resolves a single-line ambiguity the
literal automaton leaves open. The current token is never consumed here;
the caller decides whether to advance based on the returned action.
*/
func (p *Parser) handleScopeBodyContinuation(toks []Token, index int) scopeContinuationAction {
	for !p.isScopeBodySEQ(p.top()) {
		if p.topNode().Kind == SEQ {
			p.fatalf("Malformed line")
			return scopeContinuationError
		}
		p.concludeOnce()
	}

	if peek(toks, index+1).Kind == COLON {
		return scopeContinuationNewStatement
	}
	return scopeContinuationEcho
}

/*
endOfLineRebase concludes actives until the top is a SEQ, stopping early
if the top is itself a still-open multi-line construct. An ELSE arm is
terminal — no further arm can legally follow it — so reaching one en
route also concludes its containing CONDEX, even though CONDEX is
itself normally a line-spanning construct.
*/
func (p *Parser) endOfLineRebase() {
	for {
		n := p.topNode()
		if n.Kind == SEQ {
			return
		}
		if n.Kind == ELSE {
			p.concludeOnce()
			p.concludeOnce() // the ELSE's containing CONDEX
			continue
		}
		if p.constructs[n.Index] {
			return
		}
		p.concludeOnce()
	}
}
