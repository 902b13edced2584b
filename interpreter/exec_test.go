/*
 * condex
 *
 * Copyright 2026 The condex Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package interpreter

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/dathos/condex/parser"
	"github.com/dathos/condex/scope"
	"github.com/dathos/condex/util"
)

/*
runProgram parses and executes lines, returning the captured stdout (the
"!" sink's printed output) and the environment the run finished with.
*/
func runProgram(t *testing.T, lines ...string) (string, *scope.Env, *util.Diagnostics) {
	t.Helper()

	diags := util.NewDiagnostics(nil)
	p := parser.NewParser(diags)
	for i, l := range lines {
		p.ParseLine(l, i)
		if diags.HasFatal() {
			break
		}
	}
	if diags.HasFatal() {
		t.Fatalf("unexpected parse-time fatal: %v", diags.All())
	}

	env := scope.NewEnv()
	ex := NewExecutor(p.Tree, env, diags, func(i int) string { return lines[i] })

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	ex.Run()

	w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	io.Copy(&buf, r)

	return buf.String(), env, diags
}

// Scenario 1: simple assignment and output.
func TestSimpleAssignmentAndOutput(t *testing.T) {
	out, _, diags := runProgram(t, "x: 3 + 4", "!: x")
	if diags.HasFatal() {
		t.Fatalf("unexpected fatal: %v", diags.All())
	}
	if out != "7\n" {
		t.Fatalf("expected stdout %q, got %q", "7\n", out)
	}
}

// Scenario 2: local scope and return; locals vanish from globals after the
// scope concludes.
func TestLocalScopeAndReturn(t *testing.T) {
	out, env, diags := runProgram(t, "y: (@ a': 5 a')", "!: y")
	if diags.HasFatal() {
		t.Fatalf("unexpected fatal: %v", diags.All())
	}
	if out != "5\n" {
		t.Fatalf("expected stdout %q, got %q", "5\n", out)
	}
	for _, pair := range env.Globals() {
		if pair.Name == "a" {
			t.Fatalf("expected local 'a' to be reclaimed, found %v", pair)
		}
	}
}

// Scenario 4: conditional expression, if branch taken.
func TestCondexIfBranch(t *testing.T) {
	out, _, diags := runProgram(t, "x: 1", "y: (? x : 10 ; 20)", "!: y")
	if diags.HasFatal() {
		t.Fatalf("unexpected fatal: %v", diags.All())
	}
	if out != "10\n" {
		t.Fatalf("expected stdout %q, got %q", "10\n", out)
	}
}

// Scenario 5: conditional expression, else branch taken.
func TestCondexElseBranch(t *testing.T) {
	out, _, diags := runProgram(t, "x: 0", "y: (? x : 10 ; 20)", "!: y")
	if diags.HasFatal() {
		t.Fatalf("unexpected fatal: %v", diags.All())
	}
	if out != "20\n" {
		t.Fatalf("expected stdout %q, got %q", "20\n", out)
	}
}

// Scenario 6: undefined name is fatal.
func TestUndefinedNameIsFatal(t *testing.T) {
	_, _, diags := runProgram(t, "!: zzz")
	if !diags.HasFatal() {
		t.Fatal("expected a fatal diagnostic for an undefined name")
	}
}

// Open question #3: the first (leftmost) matching IF arm wins even when a
// later arm would also match.
func TestCondexFirstMatchingArmWins(t *testing.T) {
	out, _, diags := runProgram(t, "x: 1", "y: (? x : 10 ? x : 20 ; 30)", "!: y")
	if diags.HasFatal() {
		t.Fatalf("unexpected fatal: %v", diags.All())
	}
	if out != "10\n" {
		t.Fatalf("expected leftmost arm (10) to win, got %q", out)
	}
}

// A condex with no matching IF and no ELSE must not crash; its value is
// implementation-defined unset (boundary behavior, section 8.3).
func TestCondexNoMatchNoElseDoesNotCrash(t *testing.T) {
	out, _, diags := runProgram(t, "x: 0", "y: (? x : 10)", "!: y")
	if diags.HasFatal() {
		t.Fatalf("unexpected fatal: %v", diags.All())
	}
	if out != "<unset>\n" {
		t.Fatalf("expected the unset sentinel to print, got %q", out)
	}
}

// Scenario 3's shape with the predicate's global starting at 0: the
// predicate is false on its very first check, so the cycle terminates at
// once, yields an empty sequence (section 8.3) and leaves n unchanged (see
// SPEC_FULL.md's note on scenario 3's own non-termination).
func TestCycleEmptyOnFirstFailingPredicate(t *testing.T) {
	out, env, diags := runProgram(t, "n: 0", "r: [n : n - 1]", "!: n")
	if diags.HasFatal() {
		t.Fatalf("unexpected fatal: %v", diags.All())
	}
	if out != "0\n" {
		t.Fatalf("expected post-loop n unchanged at 0, got %q", out)
	}
	r, ok := env.GetGlobal("r")
	if seq, isSeq := r.([]interface{}); !ok || !isSeq || len(seq) != 0 {
		t.Fatalf("expected r to be an empty sequence, got %v", r)
	}
}

// A runaway cycle (predicate never turns false because nothing in its body
// mutates the variable it reads) trips the configured safety cap rather
// than hanging forever, and is reported as a fatal diagnostic.
func TestCycleRunawayHitsIterationCap(t *testing.T) {
	_, _, diags := runProgram(t, "n: 3", "r: [n : n - 1]", "!: n")
	if !diags.HasFatal() {
		t.Fatal("expected the runaway cycle to trip the iteration cap")
	}
}

// A scope's local is visible to an expression nested inside it but gone
// the instant the surrounding assignment completes.
func TestScopeLocalNotVisibleOutside(t *testing.T) {
	_, _, diags := runProgram(t, "y: (@ a': 5 a')", "!: a'")
	if !diags.HasFatal() {
		t.Fatal("expected referencing a' outside its scope to be fatal")
	}
}

// '!' can never be read as a value.
func TestBangAsValueIsFatal(t *testing.T) {
	_, _, diags := runProgram(t, "x: !")
	if !diags.HasFatal() {
		t.Fatal("expected using '!' as a value to be fatal")
	}
}

// Arithmetic with more than one operator reduces left to right at equal
// precedence.
func TestArithmeticLeftAssociative(t *testing.T) {
	out, _, diags := runProgram(t, "x: 10 - 3 - 2", "!: x")
	if diags.HasFatal() {
		t.Fatalf("unexpected fatal: %v", diags.All())
	}
	if out != "5\n" {
		t.Fatalf("expected 5, got %q", out)
	}
}

// A global assigned while lexically inside a scope is never reclaimed,
// per Open Question #1's recorded decision: only LNAME locals are dropped
// when the scope concludes.
func TestGlobalAssignedInsideScopeLeaksOut(t *testing.T) {
	out, _, diags := runProgram(t,
		"y: (@ a'",
		"g: 9",
		"a': 5",
		")",
		"!: g")
	if diags.HasFatal() {
		t.Fatalf("unexpected fatal: %v", diags.All())
	}
	if out != "9\n" {
		t.Fatalf("expected the leaked global g=9, got %q", out)
	}
}
