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

	"github.com/dathos/condex/util"
)

/*
scanState is the lexer's current finite-state-machine mode.
*/
type scanState int

const (
	stateSearch scanState = iota
	stateGName
	stateLName
	stateNumber
)

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

/*
Lex tokenizes a single line of source text. Diagnostics for bad characters
are non-fatal; lexing continues past them. lline is the zero-based line
index recorded on every produced token.
*/
func Lex(line string, lline int, diags *util.Diagnostics) []Token {
	var toks []Token

	state := stateSearch
	var builder []byte

	flushIdent := func(kind TokenKind) {
		name := string(builder)
		builder = builder[:0]
		toks = append(toks, Token{Kind: kind, Val: name, Lline: lline})
	}

	flushNumber := func() {
		n, _ := strconv.Atoi(string(builder))
		builder = builder[:0]
		toks = append(toks, Token{Kind: NUMBER, Num: n, Lline: lline})
	}

	i := 0
	for i < len(line) {
		c := line[i]

		switch state {
		case stateGName:
			if isIdentChar(c) {
				builder = append(builder, c)
				i++
				continue
			}
			if c == '\'' {
				flushIdent(LNAME)
				state = stateSearch
				i++
				continue
			}
			flushIdent(GNAME)
			state = stateSearch
			continue // re-examine c under SEARCH

		case stateLName:
			if isIdentChar(c) {
				builder = append(builder, c)
				i++
				continue
			}
			flushIdent(LNAME)
			state = stateSearch
			if c == '\'' {
				i++
				continue
			}
			diags.Warnf(lline, line, "Bad character in local identifier '%c'", c)
			continue // re-examine c under SEARCH

		case stateNumber:
			if isDigit(c) {
				builder = append(builder, c)
				i++
				continue
			}
			flushNumber()
			state = stateSearch
			continue // re-examine c under SEARCH
		}

		// state == stateSearch

		if isSpace(c) {
			i++
			continue
		}

		if kind, ok := singleCharTokens[rune(c)]; ok {
			toks = append(toks, Token{Kind: kind, Lline: lline})
			i++
			continue
		}

		if c == '!' {
			toks = append(toks, Token{Kind: GNAME, Val: "!", Lline: lline})
			i++
			continue
		}

		if isIdentStart(c) {
			state = stateGName
			builder = append(builder, c)
			i++
			continue
		}

		if c == '\'' {
			// Apostrophe opening a delimited local identifier with nothing
			// buffered yet; accumulates until a closing apostrophe, mirroring
			// the delimited form alongside the trailing-apostrophe form
			// produced when stateGName is closed by an apostrophe above.
			state = stateLName
			i++
			continue
		}

		if isDigit(c) {
			state = stateNumber
			builder = append(builder, c)
			i++
			continue
		}

		diags.Warnf(lline, line, "Bad character in program '%c'", c)
		i++
	}

	// End of line: flush any pending token.
	switch state {
	case stateGName:
		flushIdent(GNAME)
	case stateLName:
		flushIdent(LNAME)
	case stateNumber:
		flushNumber()
	}

	return toks
}
