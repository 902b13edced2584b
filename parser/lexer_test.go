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
	"testing"

	"github.com/dathos/condex/util"
)

func lexNoDiag(t *testing.T, line string) []Token {
	diags := util.NewDiagnostics(nil)
	toks := Lex(line, 0, diags)
	if diags.HasFatal() {
		t.Fatalf("unexpected fatal diagnostic lexing %q", line)
	}
	return toks
}

func TestLexSimpleAssignment(t *testing.T) {
	toks := lexNoDiag(t, "x: 3 + 4")

	want := []Token{
		{Kind: GNAME, Val: "x"},
		{Kind: COLON},
		{Kind: NUMBER, Num: 3},
		{Kind: PLUS},
		{Kind: NUMBER, Num: 4},
	}

	assertTokenKindsAndVals(t, toks, want)
}

func TestLexScopeReturnTrailingApostrophe(t *testing.T) {
	toks := lexNoDiag(t, "y: (@ a': 5 a')")

	want := []Token{
		{Kind: GNAME, Val: "y"},
		{Kind: COLON},
		{Kind: LPAREN},
		{Kind: AT},
		{Kind: LNAME, Val: "a"},
		{Kind: COLON},
		{Kind: NUMBER, Num: 5},
		{Kind: LNAME, Val: "a"},
		{Kind: RPAREN},
	}

	assertTokenKindsAndVals(t, toks, want)
}

func TestLexDelimitedLocalIdentifier(t *testing.T) {
	toks := lexNoDiag(t, "'a'")

	if len(toks) != 1 || toks[0].Kind != LNAME || toks[0].Val != "a" {
		t.Errorf("unexpected tokens: %v", toks)
	}
}

func TestLexSinkIdentifier(t *testing.T) {
	toks := lexNoDiag(t, "!: x")

	if toks[0].Kind != GNAME || toks[0].Val != "!" {
		t.Errorf("expected GNAME(!) got %v", toks[0])
	}
}

func TestLexCycleAndCondexSymbols(t *testing.T) {
	toks := lexNoDiag(t, "[n : n - 1] (? x : 10 ; 20)")

	wantKinds := []TokenKind{
		LBRACK, GNAME, COLON, GNAME, MINUS, NUMBER, RBRACK,
		LPAREN, QUOI, GNAME, COLON, NUMBER, SEMI, NUMBER, RPAREN,
	}

	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(wantKinds), toks)
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexBadCharacterWarns(t *testing.T) {
	diags := util.NewDiagnostics(nil)
	Lex("x: 3 $ 4", 0, diags)

	if diags.HasFatal() {
		t.Error("bad character should be a warning, not fatal")
	}
	if len(diags.All()) != 1 {
		t.Errorf("expected 1 diagnostic, got %d", len(diags.All()))
	}
}

func assertTokenKindsAndVals(t *testing.T, got []Token, want []Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i].Kind != want[i].Kind || got[i].Val != want[i].Val || got[i].Num != want[i].Num {
			t.Errorf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}
