/*
 * condex
 *
 * Copyright 2026 The condex Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package scope

import "testing"

func TestGlobalsNeverReclaimed(t *testing.T) {
	e := NewEnv()
	e.SetGlobal("n", 3)
	e.ReclaimScope("0.1") // unrelated scope conclude must not touch globals

	v, ok := e.GetGlobal("n")
	if !ok || v != 3 {
		t.Fatalf("expected global n=3 to survive, got %v %v", v, ok)
	}
}

func TestLocalsReclaimedOnScopeConclude(t *testing.T) {
	e := NewEnv()
	e.SetLocal("0.5", "a", 10)

	if v, ok := e.GetLocal("0.5", "a"); !ok || v != 10 {
		t.Fatalf("expected local a=10, got %v %v", v, ok)
	}

	e.ReclaimScope("0.5")

	if _, ok := e.GetLocal("0.5", "a"); ok {
		t.Error("expected local to be gone after scope conclude")
	}
}

func TestLocalLookupWalksAncestorScopes(t *testing.T) {
	e := NewEnv()
	e.SetLocal("0.5", "outer", 1)

	if v, ok := e.GetLocal("0.5.9", "outer"); !ok || v != 1 {
		t.Fatalf("expected nested scope to see ancestor local, got %v %v", v, ok)
	}
}

func TestGlobalsOrderedByFirstInsertion(t *testing.T) {
	e := NewEnv()
	e.SetGlobal("b", 2)
	e.SetGlobal("a", 1)
	e.SetGlobal("b", 20)

	pairs := e.Globals()
	if len(pairs) != 2 || pairs[0].Name != "b" || pairs[1].Name != "a" {
		t.Fatalf("unexpected order: %v", pairs)
	}
	if pairs[0].Value != 20 {
		t.Errorf("expected updated value 20, got %v", pairs[0].Value)
	}
}
