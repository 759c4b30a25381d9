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

// Package state implements Possibility and InformationState (§4.2, §4.3 of
// the specification), plus the sub-state enumerator (§4.5).
package state

import (
	"fmt"
	"sort"
	"strings"

	gsv "github.com/r-caso/gsv-go"
	"github.com/r-caso/gsv-go/refsys"
)

// Possibility is a world paired with a peg-assignment, sharing a referent
// system with the other possibilities of whatever InformationState it
// belongs to.
type Possibility struct {
	RS         *refsys.ReferentSystem
	Assignment map[int]gsv.Individual
	World      gsv.World
}

// New returns an ignorant possibility for world w: no pegs assigned, using
// the given (shared) referent system.
func New(rs *refsys.ReferentSystem, w gsv.World) *Possibility {
	return &Possibility{RS: rs, Assignment: map[int]gsv.Individual{}, World: w}
}

// VariableDenotation looks up the individual a variable denotes in this
// possibility: first its peg via the referent system, then that peg's
// assignment. Fails with gsv.UnboundVariable if the variable has no peg, or
// if its peg is unassigned (an orphaned or not-yet-assigned peg).
func (p *Possibility) VariableDenotation(variable string) (gsv.Individual, error) {
	peg, err := p.RS.Value(variable)
	if err != nil {
		return 0, err
	}
	d, ok := p.Assignment[peg]
	if !ok {
		return 0, gsv.NewEvalError(gsv.UnboundVariable, variable)
	}
	return d, nil
}

// withBinding returns a new Possibility sharing rs, with peg additionally
// mapped to individual. The receiver is never mutated.
func (p *Possibility) withBinding(rs *refsys.ReferentSystem, peg int, individual gsv.Individual) *Possibility {
	assignment := make(map[int]gsv.Individual, len(p.Assignment)+1)
	for k, v := range p.Assignment {
		assignment[k] = v
	}
	assignment[peg] = individual
	return &Possibility{RS: rs, Assignment: assignment, World: p.World}
}

// Extends reports whether p2 extends p1: same world, and for every peg
// mapped in p1, p2 maps the same peg to the same individual. Pegs present
// only in p2 are unrestricted.
func Extends(p2, p1 *Possibility) bool {
	if p2.World != p1.World {
		return false
	}
	for peg, ind := range p1.Assignment {
		ind2, ok := p2.Assignment[peg]
		if !ok || ind2 != ind {
			return false
		}
	}
	return true
}

// key returns a canonical structural key for set-membership and
// deduplication purposes: world, every peg/individual pair in ascending
// peg order, and every variable/peg binding of the referent system in
// ascending variable order. Two possibilities with the same world are NOT
// conflated unless their assignments and bindings also agree (REDESIGN
// FLAG, §9: the source's order-keyed-solely-on-world set is replaced with
// full structural equality here).
func (p *Possibility) key() string {
	pegs := make([]int, 0, len(p.Assignment))
	for peg := range p.Assignment {
		pegs = append(pegs, peg)
	}
	sort.Ints(pegs)
	var b strings.Builder
	fmt.Fprintf(&b, "%d", p.World)
	for _, peg := range pegs {
		fmt.Fprintf(&b, "|%d=%d", peg, p.Assignment[peg])
	}
	vars := make([]string, 0)
	for v := range p.RS.Domain() {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	for _, v := range vars {
		peg, _ := p.RS.Value(v)
		fmt.Fprintf(&b, "|%q:%d", v, peg)
	}
	return b.String()
}

// Similar reports whether p1 and p2 are similar (§4.6): same world, same
// bound-variable domain, and every variable in that domain denotes the same
// individual in both. Unlike Extends, this compares via variable name
// rather than raw peg number, so it is meaningful across possibilities with
// different (but corresponding) referent systems.
func Similar(p1, p2 *Possibility) bool {
	if p1.World != p2.World {
		return false
	}
	dom1 := p1.RS.Domain()
	dom2 := p2.RS.Domain()
	if len(dom1) != len(dom2) {
		return false
	}
	for v := range dom1 {
		if _, ok := dom2[v]; !ok {
			return false
		}
		d1, err1 := p1.VariableDenotation(v)
		d2, err2 := p2.VariableDenotation(v)
		if err1 != nil || err2 != nil || d1 != d2 {
			return false
		}
	}
	return true
}
