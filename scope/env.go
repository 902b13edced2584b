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

import (
	"strings"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

/*
Env is the interpreter's variable environment. GNAME identifiers are
globals: a single flat, insertion-ordered table that lives for the whole
run and is never reclaimed. LNAME identifiers are locals: held in a
per-scope-signature table that is dropped wholesale when the owning
SCOPE concludes. This asymmetry is deliberate, see SPEC_FULL.md's
open-question decisions.
*/
type Env struct {
	mu      sync.RWMutex
	globals *orderedmap.OrderedMap[string, interface{}]
	locals  map[string]map[string]interface{} // scope signature -> name -> value
}

/*
NewEnv creates an empty environment.
*/
func NewEnv() *Env {
	return &Env{
		globals: orderedmap.New[string, interface{}](),
		locals:  make(map[string]map[string]interface{}),
	}
}

/*
SetGlobal creates or updates a GNAME variable. Insertion order is
preserved for variables seen for the first time, matching the order the
--globals dump reports them in.
*/
func (e *Env) SetGlobal(name string, v interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.globals.Set(name, v)
}

/*
GetGlobal reads a GNAME variable.
*/
func (e *Env) GetGlobal(name string) (interface{}, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.globals.Get(name)
}

/*
SetLocal creates or updates an LNAME variable in the scope identified by
sig.
*/
func (e *Env) SetLocal(sig, name string, v interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.locals[sig]
	if !ok {
		m = make(map[string]interface{})
		e.locals[sig] = m
	}
	m[name] = v
}

/*
GetLocal reads an LNAME variable, searching sig and then each of its
ancestor scope signatures in turn (lexical scoping: an inner scope sees
its enclosing scopes' locals).
*/
func (e *Env) GetLocal(sig, name string) (interface{}, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for candidate := sig; ; {
		if m, ok := e.locals[candidate]; ok {
			if v, ok := m[name]; ok {
				return v, true
			}
		}
		idx := strings.LastIndex(candidate, ".")
		if idx < 0 {
			return nil, false
		}
		candidate = candidate[:idx]
	}
}

/*
ReclaimScope discards every LNAME local bound directly in the scope
identified by sig. Called once a SCOPE node concludes.
*/
func (e *Env) ReclaimScope(sig string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.locals, sig)
}

/*
GlobalPair is one (name, value) entry from a Globals() dump.
*/
type GlobalPair struct {
	Name  string
	Value interface{}
}

/*
Globals returns every GNAME variable in insertion order, for the
--globals dump.
*/
func (e *Env) Globals() []GlobalPair {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []GlobalPair
	for pair := e.globals.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, GlobalPair{Name: pair.Key, Value: pair.Value})
	}
	return out
}
