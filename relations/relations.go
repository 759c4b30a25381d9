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

// Package relations implements the semantic-relation predicates built on
// top of package eval: consistency, coherence, support, entailment (three
// variants), and equivalence (§4.6).
package relations

import (
	"context"

	"golang.org/x/sync/errgroup"

	gsv "github.com/r-caso/gsv-go"
	"github.com/r-caso/gsv-go/eval"
	"github.com/r-caso/gsv-go/state"
)

// Consistent reports whether ⟦expr⟧(in, model) is nonempty. An evaluation
// error propagates rather than being treated as "the relation fails"
// (§7).
func Consistent(ctx context.Context, expr gsv.Expression, in state.InformationState, model gsv.Model) (bool, error) {
	out, err := eval.Evaluate(ctx, expr, in, model)
	if err != nil {
		return false, err
	}
	return out.Len() > 0, nil
}

// Allows is an alias for Consistent with the same argument order as the
// rest of this package (the spec's (state, expr, model) ordering is
// exposed here; Consistent itself uses (expr, state, model) to match
// Evaluate's own parameter order).
func Allows(ctx context.Context, in state.InformationState, expr gsv.Expression, model gsv.Model) (bool, error) {
	return Consistent(ctx, expr, in, model)
}

// Supports reports whether in subsists in ⟦expr⟧(in, model).
func Supports(ctx context.Context, in state.InformationState, expr gsv.Expression, model gsv.Model) (bool, error) {
	out, err := eval.Evaluate(ctx, expr, in, model)
	if err != nil {
		return false, err
	}
	return state.StateSubsistsIn(in, out), nil
}

// IsSupportedBy is Supports with its first two arguments swapped, matching
// the spec's alias naming.
func IsSupportedBy(ctx context.Context, expr gsv.Expression, in state.InformationState, model gsv.Model) (bool, error) {
	return Supports(ctx, in, expr, model)
}

// ConsistentInModel reports whether, for every cardinality k in
// [1, WorldCardinality(model)), some k-element sub-state over model's
// worlds is consistent with expr. The search across sub-states of a given
// cardinality runs concurrently (one errgroup goroutine per candidate, with
// no limit on their number), since each
// candidate's consistency check is an independent read-only evaluation.
//
// k=0's only sub-state is the empty state, and ⟦expr⟧(∅) is ∅ for every
// expr (§4.4), so Consistent(expr, ∅, model) never holds: the empty
// sub-state can never serve as a witness. Rather than letting that
// degeneracy fail the relation for every expr, k=0 is treated as trivially
// satisfied — there is no nonempty candidate at that cardinality to fail
// against, so it imposes no constraint.
func ConsistentInModel(ctx context.Context, expr gsv.Expression, model gsv.Model) (bool, error) {
	w := model.WorldCardinality()
	for k := 1; k < w; k++ {
		ok, err := anySubState(ctx, model, k, func(ctx context.Context, s state.InformationState) (bool, error) {
			return Consistent(ctx, expr, s, model)
		})
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// CoherentInModel reports whether, for every cardinality k in
// [1, WorldCardinality(model)), some k-element nonempty sub-state supports
// expr.
//
// A coherence witness is required to be nonempty (§4.6), and the only
// k=0 sub-state is the empty one, so no witness can ever exist at k=0.
// That cardinality is skipped rather than treated as an unsatisfiable
// requirement.
func CoherentInModel(ctx context.Context, expr gsv.Expression, model gsv.Model) (bool, error) {
	w := model.WorldCardinality()
	for k := 1; k < w; k++ {
		ok, err := anySubState(ctx, model, k, func(ctx context.Context, s state.InformationState) (bool, error) {
			return Supports(ctx, s, expr, model)
		})
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// anySubState reports whether check holds for at least one k-cardinality
// sub-state of model, checking candidates concurrently.
func anySubState(ctx context.Context, model gsv.Model, k int, check func(context.Context, state.InformationState) (bool, error)) (bool, error) {
	subs := state.GenerateSubStates(model.WorldCardinality(), k)
	results := make([]bool, len(subs))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range subs {
		i, s := i, s
		g.Go(func() error {
			ok, err := check(gctx, s)
			if err != nil {
				return err
			}
			results[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}
	for _, ok := range results {
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// updateWithPremises sequentially updates state s with each premise in
// order, i.e. ⟦premise_n⟧(...⟦premise_1⟧(s, model)...).
func updateWithPremises(ctx context.Context, premises []gsv.Expression, s state.InformationState, model gsv.Model) (state.InformationState, error) {
	cur := s
	for _, premise := range premises {
		var err error
		cur, err = eval.Evaluate(ctx, premise, cur, model)
		if err != nil {
			return state.InformationState{}, err
		}
	}
	return cur, nil
}

// Entails0 sequentially updates the ignorant state over model with
// premises, requires the conclusion's update to be defined on the result,
// and requires that result to support the conclusion.
func Entails0(ctx context.Context, premises []gsv.Expression, conclusion gsv.Expression, model gsv.Model) (bool, error) {
	updated, err := updateWithPremises(ctx, premises, state.Create(model), model)
	if err != nil {
		return false, err
	}
	if _, err := eval.Evaluate(ctx, conclusion, updated, model); err != nil {
		return false, err
	}
	return Supports(ctx, updated, conclusion, model)
}

// EntailsG (the default "entails") requires that, for every sub-state s of
// every cardinality over model, sequentially updating s with premises
// yields a state that supports the conclusion. It fails (returns false,
// nil) on the first counterexample, and propagates the first evaluation
// error encountered.
func EntailsG(ctx context.Context, premises []gsv.Expression, conclusion gsv.Expression, model gsv.Model) (bool, error) {
	w := model.WorldCardinality()
	for k := 0; k <= w; k++ {
		for _, s := range state.GenerateSubStates(w, k) {
			updated, err := updateWithPremises(ctx, premises, s, model)
			if err != nil {
				return false, err
			}
			ok, err := Supports(ctx, updated, conclusion, model)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

// EntailsC requires that, for every sub-state s over model, if s supports
// every premise then s also supports the conclusion.
func EntailsC(ctx context.Context, premises []gsv.Expression, conclusion gsv.Expression, model gsv.Model) (bool, error) {
	w := model.WorldCardinality()
	for k := 0; k <= w; k++ {
		for _, s := range state.GenerateSubStates(w, k) {
			allPremises := true
			for _, premise := range premises {
				ok, err := Supports(ctx, s, premise, model)
				if err != nil {
					return false, err
				}
				if !ok {
					allPremises = false
					break
				}
			}
			if !allPremises {
				continue
			}
			ok, err := Supports(ctx, s, conclusion, model)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

// Entails is the default entailment relation, EntailsG.
func Entails(ctx context.Context, premises []gsv.Expression, conclusion gsv.Expression, model gsv.Model) (bool, error) {
	return EntailsG(ctx, premises, conclusion, model)
}

// Equivalent reports whether, for every sub-state s over model, updating s
// with expr1 and with expr2 produce similar states (§4.6).
func Equivalent(ctx context.Context, expr1, expr2 gsv.Expression, model gsv.Model) (bool, error) {
	w := model.WorldCardinality()
	for k := 0; k <= w; k++ {
		for _, s := range state.GenerateSubStates(w, k) {
			out1, err := eval.Evaluate(ctx, expr1, s, model)
			if err != nil {
				return false, err
			}
			out2, err := eval.Evaluate(ctx, expr2, s, model)
			if err != nil {
				return false, err
			}
			if !state.StatesSimilar(out1, out2) {
				return false, nil
			}
		}
	}
	return true, nil
}
