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

// GenerateSubStates returns every k-element subset of the ignorant
// possibilities definable over worlds 0..worldCount-1 (§4.5), in
// ascending-world-index order. For k == 0 the unique empty state is
// returned. For k > worldCount, no such subset exists and nil is returned.
//
// Per the Open Question resolution in DESIGN.md, every possibility within
// one generated sub-state shares a single fresh, empty ReferentSystem,
// mirroring the invariant Create establishes — so the result is directly
// usable as input to Evaluate without first needing to unify referent
// systems across its possibilities.
func GenerateSubStates(worldCount, k int) []InformationState {
	if k == 0 {
		return []InformationState{Empty(refsys.New())}
	}
	if k > worldCount {
		return nil
	}
	var combos [][]int
	var build func(start int, chosen []int)
	build = func(start int, chosen []int) {
		if len(chosen) == k {
			c := make([]int, k)
			copy(c, chosen)
			combos = append(combos, c)
			return
		}
		remaining := k - len(chosen)
		for w := start; w <= worldCount-remaining; w++ {
			build(w+1, append(chosen, w))
		}
	}
	build(0, nil)

	out := make([]InformationState, 0, len(combos))
	for _, combo := range combos {
		rs := refsys.New()
		s := Empty(rs)
		for _, w := range combo {
			s = s.Add(New(rs, gsv.World(w)))
		}
		out = append(out, s)
	}
	return out
}
