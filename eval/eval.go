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

// Package eval implements the compositional update function, ⟦·⟧, over the
// six-connective QML fragment (§4.4). Evaluate is the only entry point;
// every other function in this file is an internal dispatch arm, one per
// Expression node kind, matching the teacher's own type-switch dispatch
// style (see datalog's query.discovered / engine.go's switch on node type)
// rather than a visitor pattern (§9's "visitor with variant argument"
// redesign note).
package eval

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	gsv "github.com/r-caso/gsv-go"
	"github.com/r-caso/gsv-go/state"
)

// Option configures an Evaluate call.
type Option func(*config)

type config struct {
	formatter gsv.Formatter
}

// WithFormatter supplies the external formatter §6 treats as an opaque
// collaborator for rendering expressions in error traces. When omitted,
// Expression.String is used.
func WithFormatter(f gsv.Formatter) Option {
	return func(c *config) { c.formatter = f }
}

// Evaluate computes ⟦expr⟧(in, model): the compositional update of in by
// expr, relative to model. The input state is never mutated; a new state is
// always returned. Errors are wrapped at every recursive level with the
// printed form of the enclosing expression, per §6/§7, so a failure trace
// reads from outermost to innermost failing subformula.
//
// Logging: if ctx carries a *zerolog.Logger (via zerolog.Ctx), each
// recursive step is logged at trace level. This is purely observational;
// Evaluate's result never depends on it.
func Evaluate(ctx context.Context, expr gsv.Expression, in state.InformationState, model gsv.Model, opts ...Option) (state.InformationState, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	return evalExpr(ctx, expr, in, model, &cfg)
}

func evalExpr(ctx context.Context, expr gsv.Expression, in state.InformationState, model gsv.Model, cfg *config) (state.InformationState, error) {
	log := zerolog.Ctx(ctx)
	log.Trace().Str("formula", expr.String()).Int("possibilities", in.Len()).Msg("evaluating")

	var out state.InformationState
	var err error
	switch e := expr.(type) {
	case *gsv.Predication:
		out, err = evalPredication(e, in, model)
	case *gsv.Identity:
		out, err = evalIdentity(e, in, model)
	case *gsv.Unary:
		out, err = evalUnary(ctx, e, in, model, cfg)
	case *gsv.Binary:
		out, err = evalBinary(ctx, e, in, model, cfg)
	case *gsv.Quantification:
		out, err = evalQuantification(ctx, e, in, model, cfg)
	default:
		err = gsv.NewEvalError(gsv.InvalidOperator, fmt.Sprintf("unrecognized expression node %T", expr))
	}
	if err != nil {
		return state.InformationState{}, gsv.WrapEvalError(expr, cfg.formatter, err)
	}
	return out, nil
}

// denote resolves a term's individual at possibility p: variables via the
// possibility's own assignment, constants via the model.
func denote(t gsv.Term, p *state.Possibility, model gsv.Model) (gsv.Individual, error) {
	switch t.Kind {
	case gsv.VARIABLE:
		d, err := p.VariableDenotation(t.Literal)
		if err != nil {
			return 0, err
		}
		return d, nil
	case gsv.CONSTANT:
		d, err := model.TermInterpretation(t.Literal, p.World)
		if err != nil {
			return 0, gsv.NewEvalError(gsv.UninterpretedTerm, fmt.Sprintf("%s: %v", t.Literal, err))
		}
		return d, nil
	default:
		return 0, gsv.NewEvalError(gsv.InvalidOperator, "unrecognized term kind")
	}
}

func evalPredication(e *gsv.Predication, in state.InformationState, model gsv.Model) (state.InformationState, error) {
	out := state.Empty(in.RS)
	for _, p := range in.Possibilities() {
		tuple := make(gsv.Tuple, len(e.Args))
		for i, arg := range e.Args {
			d, err := denote(arg, p, model)
			if err != nil {
				return state.InformationState{}, err
			}
			tuple[i] = d
		}
		extension, err := model.PredicateInterpretation(e.Predicate, p.World)
		if err != nil {
			return state.InformationState{}, gsv.NewEvalError(gsv.UninterpretedPredicate, fmt.Sprintf("%s: %v", e.Predicate, err))
		}
		for _, candidate := range extension {
			if candidate.Equal(tuple) {
				out = out.Add(p)
				break
			}
		}
	}
	return out, nil
}

func evalIdentity(e *gsv.Identity, in state.InformationState, model gsv.Model) (state.InformationState, error) {
	out := state.Empty(in.RS)
	for _, p := range in.Possibilities() {
		d1, err := denote(e.Left, p, model)
		if err != nil {
			return state.InformationState{}, err
		}
		d2, err := denote(e.Right, p, model)
		if err != nil {
			return state.InformationState{}, err
		}
		if d1 == d2 {
			out = out.Add(p)
		}
	}
	return out, nil
}

func evalUnary(ctx context.Context, e *gsv.Unary, in state.InformationState, model gsv.Model, cfg *config) (state.InformationState, error) {
	switch e.Op {
	case gsv.NEG:
		updated, err := evalExpr(ctx, e.Scope, in, model, cfg)
		if err != nil {
			return state.InformationState{}, err
		}
		return in.Filter(func(p *state.Possibility) bool {
			return !state.SubsistsInState(p, updated)
		}), nil
	case gsv.EPISTEMIC_POSSIBILITY:
		updated, err := evalExpr(ctx, e.Scope, in, model, cfg)
		if err != nil {
			return state.InformationState{}, err
		}
		if updated.Len() == 0 {
			return state.Empty(in.RS), nil
		}
		return in, nil
	case gsv.EPISTEMIC_NECESSITY:
		updated, err := evalExpr(ctx, e.Scope, in, model, cfg)
		if err != nil {
			return state.InformationState{}, err
		}
		if !state.StateSubsistsIn(in, updated) {
			return state.Empty(in.RS), nil
		}
		return in, nil
	default:
		return state.InformationState{}, gsv.NewEvalError(gsv.InvalidOperator, "unrecognized unary operator")
	}
}

func evalBinary(ctx context.Context, e *gsv.Binary, in state.InformationState, model gsv.Model, cfg *config) (state.InformationState, error) {
	switch e.Op {
	case gsv.CONJUNCTION:
		left, err := evalExpr(ctx, e.Left, in, model, cfg)
		if err != nil {
			return state.InformationState{}, err
		}
		return evalExpr(ctx, e.Right, left, model, cfg)
	case gsv.DISJUNCTION:
		left, err := evalExpr(ctx, e.Left, in, model, cfg)
		if err != nil {
			return state.InformationState{}, err
		}
		negLeft := &gsv.Unary{Op: gsv.NEG, Scope: e.Left}
		antecedentForRight, err := evalExpr(ctx, negLeft, in, model, cfg)
		if err != nil {
			return state.InformationState{}, err
		}
		right, err := evalExpr(ctx, e.Right, antecedentForRight, model, cfg)
		if err != nil {
			return state.InformationState{}, err
		}
		return in.Filter(func(p *state.Possibility) bool {
			return left.Contains(p) || right.Contains(p)
		}), nil
	case gsv.CONDITIONAL:
		antecedent, err := evalExpr(ctx, e.Left, in, model, cfg)
		if err != nil {
			return state.InformationState{}, err
		}
		consequent, err := evalExpr(ctx, e.Right, antecedent, model, cfg)
		if err != nil {
			return state.InformationState{}, err
		}
		return in.Filter(func(p *state.Possibility) bool {
			if !state.SubsistsInState(p, antecedent) {
				return true
			}
			for _, q := range antecedent.Possibilities() {
				if state.IsDescendantOf(q, p, antecedent) {
					if !state.SubsistsInState(q, consequent) {
						return false
					}
				}
			}
			return true
		}), nil
	default:
		return state.InformationState{}, gsv.NewEvalError(gsv.InvalidOperator, "unrecognized binary operator")
	}
}

func evalQuantification(ctx context.Context, e *gsv.Quantification, in state.InformationState, model gsv.Model, cfg *config) (state.InformationState, error) {
	n := model.DomainCardinality()
	branch := func(ctx context.Context, d int) (state.InformationState, error) {
		updated := state.Update(in, e.Variable, gsv.Individual(d))
		return evalExpr(ctx, e.Scope, updated, model, cfg)
	}
	switch e.Q {
	case gsv.EXISTENTIAL:
		branches, err := runBranches(ctx, n, branch)
		if err != nil {
			return state.InformationState{}, err
		}
		out := state.Empty(in.RS)
		for _, b := range branches {
			out = state.Union(out, b)
		}
		return out, nil
	case gsv.UNIVERSAL:
		branches, err := runBranches(ctx, n, branch)
		if err != nil {
			return state.InformationState{}, err
		}
		return in.Filter(func(p *state.Possibility) bool {
			for _, b := range branches {
				if !state.SubsistsInState(p, b) {
					return false
				}
			}
			return true
		}), nil
	default:
		return state.InformationState{}, gsv.NewEvalError(gsv.InvalidQuantifier, "unrecognized quantifier")
	}
}

// runBranches evaluates branch(ctx, d) concurrently for d in [0, n), one
// goroutine per branch (these branches are independent reads of the same
// input state, per §5: hypothetical evaluations never mutate the caller's
// state). The first error is returned once every branch has finished; the
// evaluator does not check the context, so a failing branch does not stop
// the others.
func runBranches(ctx context.Context, n int, branch func(context.Context, int) (state.InformationState, error)) ([]state.InformationState, error) {
	results := make([]state.InformationState, n)
	g, gctx := errgroup.WithContext(ctx)
	for d := 0; d < n; d++ {
		d := d
		g.Go(func() error {
			b, err := branch(gctx, d)
			if err != nil {
				return err
			}
			results[d] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
