/*
 * condex
 *
 * Copyright 2026 The condex Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package scope holds the interpreter's variable environment: a flat,
insertion-ordered table of GNAME globals (never reclaimed, see
SPEC_FULL.md's open-question decisions) plus a scope map keyed by scope
signature holding each open SCOPE's LNAME locals (reclaimed in full when
the scope concludes).
*/
package scope

import (
	"github.com/krotik/common/stringutil"
)

/*
EvalToString renders a stored value (an int, or a []interface{} sequence
of ints/sequences, or nil for an unset value) the way the "!" sink and the
--globals dump print it.
*/
func EvalToString(v interface{}) string {
	if v == nil {
		return "<unset>"
	}
	return stringutil.ConvertToString(v)
}
