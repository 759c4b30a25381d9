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

package state

import (
	gsv "github.com/r-caso/gsv-go"
	"github.com/r-caso/gsv-go/refsys"
)

// InformationState is a set of possibilities, deduplicated by Possibility's
// structural key (§4.3). RS is the single referent system shared by every
// possibility currently in the state; it is preserved even when the state
// is empty, so that Update remains well-defined on an empty input.
type InformationState struct {
	RS            *refsys.ReferentSystem
	possibilities map[string]*Possibility
}

// Empty returns an empty information state sharing the given referent
// system (typically the caller's current common referent system).
func Empty(rs *refsys.ReferentSystem) InformationState {
	return InformationState{RS: rs, possibilities: map[string]*Possibility{}}
}

// Possibilities returns the possibilities in the state, in no particular
// order.
func (s InformationState) Possibilities() []*Possibility {
	out := make([]*Possibility, 0, len(s.possibilities))
	for _, p := range s.possibilities {
		out = append(out, p)
	}
	return out
}

// Len returns the number of possibilities in the state.
func (s InformationState) Len() int {
	return len(s.possibilities)
}

// Add returns a new state with p inserted (structural dedup: inserting a
// possibility structurally identical to one already present is a no-op).
// The receiver is not mutated.
func (s InformationState) Add(p *Possibility) InformationState {
	out := make(map[string]*Possibility, len(s.possibilities)+1)
	for k, v := range s.possibilities {
		out[k] = v
	}
	out[p.key()] = p
	return InformationState{RS: s.RS, possibilities: out}
}

// Contains reports whether a possibility structurally identical to p is in
// the state.
func (s InformationState) Contains(p *Possibility) bool {
	_, ok := s.possibilities[p.key()]
	return ok
}

// Union returns the set-union (by structural equality) of s and other. The
// result's referent system is s's if s is nonempty, else other's.
func Union(s, other InformationState) InformationState {
	rs := s.RS
	if len(s.possibilities) == 0 {
		rs = other.RS
	}
	out := make(map[string]*Possibility, len(s.possibilities)+len(other.possibilities))
	for k, v := range s.possibilities {
		out[k] = v
	}
	for k, v := range other.possibilities {
		out[k] = v
	}
	return InformationState{RS: rs, possibilities: out}
}

// Filter returns the subset of s for which keep returns true.
func (s InformationState) Filter(keep func(*Possibility) bool) InformationState {
	out := make(map[string]*Possibility, len(s.possibilities))
	for k, v := range s.possibilities {
		if keep(v) {
			out[k] = v
		}
	}
	return InformationState{RS: s.RS, possibilities: out}
}

// Create returns the ignorant information state over model: one possibility
// per world, all sharing one fresh, empty referent system (§4.3).
func Create(model gsv.Model) InformationState {
	rs := refsys.New()
	s := Empty(rs)
	for w := 0; w < model.WorldCardinality(); w++ {
		s = s.Add(New(rs, gsv.World(w)))
	}
	return s
}

// Update introduces variable as a new discourse referent bound to
// individual. It allocates one fresh referent system r* (extending s.RS) by
// introducing variable, then builds one output possibility per input
// possibility: same world and assignment, plus the newly created peg mapped
// to individual. All output possibilities share r*. If s is empty, the
// result is an empty state sharing r*.
func Update(s InformationState, variable string, individual gsv.Individual) InformationState {
	newRS, peg := s.RS.Introduce(variable)
	out := Empty(newRS)
	for _, p := range s.possibilities {
		out = out.Add(p.withBinding(newRS, peg, individual))
	}
	return out
}

// ExtendsState reports whether s2 extends s1: every possibility in s2
// extends some possibility in s1.
func ExtendsState(s2, s1 InformationState) bool {
	for _, p2 := range s2.possibilities {
		found := false
		for _, p1 := range s1.possibilities {
			if Extends(p2, p1) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsDescendantOf reports whether p2 is a descendant of p1 in s: p2 is a
// member of s, and p2 extends p1.
func IsDescendantOf(p2, p1 *Possibility, s InformationState) bool {
	return s.Contains(p2) && Extends(p2, p1)
}

// SubsistsInState reports whether possibility p subsists in s: some
// possibility in s is a descendant of p.
func SubsistsInState(p *Possibility, s InformationState) bool {
	for _, p2 := range s.possibilities {
		if Extends(p2, p) {
			return true
		}
	}
	return false
}

// StateSubsistsIn reports whether every possibility of s1 subsists in s2.
func StateSubsistsIn(s1, s2 InformationState) bool {
	for _, p := range s1.possibilities {
		if !SubsistsInState(p, s2) {
			return false
		}
	}
	return true
}

// StatesSimilar reports whether every possibility of each of s1, s2 has a
// similar counterpart in the other (§4.6).
func StatesSimilar(s1, s2 InformationState) bool {
	for _, p1 := range s1.possibilities {
		found := false
		for _, p2 := range s2.possibilities {
			if Similar(p1, p2) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, p2 := range s2.possibilities {
		found := false
		for _, p1 := range s1.possibilities {
			if Similar(p1, p2) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
