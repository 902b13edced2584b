/*
 * condex
 *
 * Copyright 2026 The condex Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package config

import (
	"testing"
)

func TestConfig(t *testing.T) {

	if res := Str(CycleIterationLimit); res != "100000" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(CycleIterationLimit); res != 100000 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(MemoryLogSize); res != 500 {
		t.Error("Unexpected result:", res)
		return
	}
}
