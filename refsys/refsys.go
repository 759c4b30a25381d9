// Copyright (c) 2014, Kevin Walsh. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package refsys implements ReferentSystem, the mapping from discourse
// variable names to dense peg indices described in §4.1 of the
// specification.
//
// A ReferentSystem is immutable: Introduce returns a new ReferentSystem
// rather than mutating the receiver, per the "value semantics" option in
// §5 (copy-on-write via a fresh struct, not a literal pegCount increment).
// This also makes it safe to share a single *ReferentSystem across the
// possibilities of one InformationState, and across the concurrent
// quantifier branches in package eval, without any locking.
package refsys

import "github.com/r-caso/gsv-go"

// ReferentSystem maps discourse variable names to peg indices and tracks
// how many pegs have been introduced so far.
type ReferentSystem struct {
	bindings map[string]int
	pegCount int
}

// New returns the empty referent system: no bindings, zero pegs.
func New() *ReferentSystem {
	return &ReferentSystem{bindings: map[string]int{}, pegCount: 0}
}

// PegCount returns the number of pegs introduced so far.
func (r *ReferentSystem) PegCount() int {
	return r.pegCount
}

// Value looks up the peg bound to variable, or a gsv.UnboundVariable error
// if variable is absent from the referent system.
func (r *ReferentSystem) Value(variable string) (int, error) {
	peg, ok := r.bindings[variable]
	if !ok {
		return 0, gsv.NewEvalError(gsv.UnboundVariable, variable)
	}
	return peg, nil
}

// Domain returns the set of variable names currently bound.
func (r *ReferentSystem) Domain() map[string]struct{} {
	dom := make(map[string]struct{}, len(r.bindings))
	for v := range r.bindings {
		dom[v] = struct{}{}
	}
	return dom
}

// Introduce returns a new ReferentSystem in which variable is bound to a
// fresh peg equal to the receiver's current peg count, along with that
// fresh peg. This always allocates a new peg, even if variable was already
// bound: rebinding shadows the older peg rather than reusing it.
func (r *ReferentSystem) Introduce(variable string) (*ReferentSystem, int) {
	peg := r.pegCount
	bindings := make(map[string]int, len(r.bindings)+1)
	for v, p := range r.bindings {
		bindings[v] = p
	}
	bindings[variable] = peg
	return &ReferentSystem{bindings: bindings, pegCount: r.pegCount + 1}, peg
}

// Extends reports whether r2 extends r1: r1's peg count is no greater than
// r2's, every variable bound in r1 is also bound in r2, every variable
// shared between them either keeps the same peg or (in r2) gets a peg
// introduced no earlier than r1's peg count, and every variable new in r2
// also gets such a peg.
func Extends(r2, r1 *ReferentSystem) bool {
	if r1.pegCount > r2.pegCount {
		return false
	}
	for v, p1 := range r1.bindings {
		p2, ok := r2.bindings[v]
		if !ok {
			return false
		}
		if p2 != p1 && p2 < r1.pegCount {
			return false
		}
	}
	for v, p2 := range r2.bindings {
		if _, ok := r1.bindings[v]; !ok {
			if p2 < r1.pegCount {
				return false
			}
		}
	}
	return true
}
