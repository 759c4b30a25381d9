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

package eval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	gsv "github.com/r-caso/gsv-go"
	"github.com/r-caso/gsv-go/gsvtest"
	"github.com/r-caso/gsv-go/state"
)

// worked model: 2 worlds, 2 individuals, P = {e0} at w0, {e0, e1} at w1.
func workedModel() *gsvtest.FiniteModel {
	m := gsvtest.New(2, 2)
	m.SetPredicate("P", 0, []gsv.Tuple{{0}})
	m.SetPredicate("P", 1, []gsv.Tuple{{0}, {1}})
	return m
}

func existsXP() *gsv.Quantification {
	return &gsv.Quantification{
		Q:        gsv.EXISTENTIAL,
		Variable: "x",
		Scope:    &gsv.Predication{Predicate: "P", Args: []gsv.Term{gsv.Var("x")}},
	}
}

func TestS1ExistentialBinding(t *testing.T) {
	model := workedModel()
	out, err := Evaluate(context.Background(), existsXP(), state.Create(model), model)
	require.NoError(t, err)
	if out.Len() != 3 {
		t.Fatalf("expected 3 possibilities, got %d", out.Len())
	}
	for _, p := range out.Possibilities() {
		d, err := p.VariableDenotation("x")
		require.NoError(t, err)
		if p.World == 0 && d != 0 {
			t.Fatalf("expected w0's only possibility to bind x to 0, got %v", d)
		}
	}
}

func TestS2AnaphoraAcrossConjunction(t *testing.T) {
	model := workedModel()
	expr := &gsv.Binary{
		Op:   gsv.CONJUNCTION,
		Left: existsXP(),
		Right: &gsv.Predication{
			Predicate: "P",
			Args:      []gsv.Term{gsv.Var("x")},
		},
	}
	out, err := Evaluate(context.Background(), expr, state.Create(model), model)
	require.NoError(t, err)
	if out.Len() != 3 {
		t.Fatalf("expected the second (tautological) conjunct to keep all 3 possibilities, got %d", out.Len())
	}
}

func TestS3NegationAsTest(t *testing.T) {
	model := workedModel()
	expr := &gsv.Unary{Op: gsv.NEG, Scope: existsXP()}
	out, err := Evaluate(context.Background(), expr, state.Create(model), model)
	require.NoError(t, err)
	if out.Len() != 0 {
		t.Fatalf("expected empty state: every world has some P-individual, got %d possibilities", out.Len())
	}
}

func TestS4EpistemicPossibility(t *testing.T) {
	model := workedModel()
	x := gsv.Var("x")
	notPOfX := &gsv.Unary{Op: gsv.NEG, Scope: &gsv.Predication{Predicate: "P", Args: []gsv.Term{x}}}
	xEqX := &gsv.Identity{Left: x, Right: x}
	conj := &gsv.Binary{Op: gsv.CONJUNCTION, Left: xEqX, Right: notPOfX}
	expr := &gsv.Unary{
		Op: gsv.EPISTEMIC_POSSIBILITY,
		Scope: &gsv.Quantification{
			Q:        gsv.EXISTENTIAL,
			Variable: "x",
			Scope:    conj,
		},
	}
	in := state.Create(model)
	out, err := Evaluate(context.Background(), expr, in, model)
	require.NoError(t, err)
	if out.Len() != in.Len() {
		t.Fatalf("epistemic possibility is a test: expected both worlds to survive, got %d", out.Len())
	}
}

func TestEpistemicPossibilityFailsWhenPrejacentEmpty(t *testing.T) {
	model := gsvtest.New(1, 1)
	model.SetPredicate("P", 0, nil) // P is empty everywhere
	expr := &gsv.Unary{Op: gsv.EPISTEMIC_POSSIBILITY, Scope: existsXP()}
	out, err := Evaluate(context.Background(), expr, state.Create(model), model)
	require.NoError(t, err)
	if out.Len() != 0 {
		t.Fatal("expected epistemic possibility to fail when the prejacent is inconsistent")
	}
}

func TestEpistemicNecessity(t *testing.T) {
	// In a 1-world model where P holds of everything, □∃x.P(x) should be a
	// no-op test (the whole input state subsists in the prejacent update).
	model := gsvtest.New(1, 2)
	model.SetPredicate("P", 0, []gsv.Tuple{{0}, {1}})
	expr := &gsv.Unary{Op: gsv.EPISTEMIC_NECESSITY, Scope: existsXP()}
	in := state.Create(model)
	out, err := Evaluate(context.Background(), expr, in, model)
	require.NoError(t, err)
	if out.Len() != in.Len() {
		t.Fatal("expected □∃x.P(x) to leave the ignorant state unchanged when every world has a P")
	}
}

func TestConditional(t *testing.T) {
	model := workedModel()
	x := gsv.Var("x")
	pOfX := &gsv.Predication{Predicate: "P", Args: []gsv.Term{x}}
	// ∃x.P(x) -> P(x): once bound, the same x must satisfy P again -
	// trivially true, so every descendant of every possibility survives.
	expr := &gsv.Binary{Op: gsv.CONDITIONAL, Left: existsXP(), Right: pOfX}
	out, err := Evaluate(context.Background(), expr, state.Create(model), model)
	require.NoError(t, err)
	if out.Len() != 2 {
		t.Fatalf("conditional is a test over the original (unbound) possibilities: expected 2, got %d", out.Len())
	}
}

func TestUniversalQuantifier(t *testing.T) {
	model := workedModel()
	forAllXP := &gsv.Quantification{
		Q:        gsv.UNIVERSAL,
		Variable: "x",
		Scope:    &gsv.Predication{Predicate: "P", Args: []gsv.Term{gsv.Var("x")}},
	}
	out, err := Evaluate(context.Background(), forAllXP, state.Create(model), model)
	require.NoError(t, err)
	if out.Len() != 1 {
		t.Fatalf("only w1 has every individual in P's extension, expected 1 possibility, got %d", out.Len())
	}
	if out.Possibilities()[0].World != 1 {
		t.Fatal("expected the surviving possibility to be w1")
	}
}

func TestUninterpretedPredicateErrorTrace(t *testing.T) {
	model := gsvtest.New(1, 1)
	inner := &gsv.Predication{Predicate: "Ghost", Args: nil}
	outer := &gsv.Unary{Op: gsv.NEG, Scope: inner}
	_, err := Evaluate(context.Background(), outer, state.Create(model), model)
	require.Error(t, err)
	msg := err.Error()
	if !strings.Contains(msg, inner.String()) {
		t.Fatalf("expected error to mention the inner formula %q, got: %s", inner.String(), msg)
	}
	if !strings.Contains(msg, outer.String()) {
		t.Fatalf("expected error to mention the enclosing formula %q, got: %s", outer.String(), msg)
	}
}

func TestUnboundVariableError(t *testing.T) {
	model := gsvtest.New(1, 1)
	expr := &gsv.Predication{Predicate: "P", Args: []gsv.Term{gsv.Var("y")}}
	model.SetPredicate("P", 0, []gsv.Tuple{{0}})
	_, err := Evaluate(context.Background(), expr, state.Create(model), model)
	require.Error(t, err)
	var evalErr *gsv.EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected an *gsv.EvalError in the chain, got: %v", err)
	}
}

func TestInvalidOperatorRejected(t *testing.T) {
	model := gsvtest.New(1, 1)
	bad := &gsv.Binary{Op: gsv.BinaryOp(99), Left: existsXP(), Right: existsXP()}
	_, err := Evaluate(context.Background(), bad, state.Create(model), model)
	require.Error(t, err)
}

func TestIdempotenceOfTests(t *testing.T) {
	// φ with no quantifiers, whose only variable is already bound in σ:
	// ⟦φ⟧(⟦φ⟧(σ)) = ⟦φ⟧(σ).
	model := workedModel()
	updated := state.Update(state.Create(model), "x", 0)
	pOfX := &gsv.Predication{Predicate: "P", Args: []gsv.Term{gsv.Var("x")}}

	once, err := Evaluate(context.Background(), pOfX, updated, model)
	require.NoError(t, err)
	twice, err := Evaluate(context.Background(), pOfX, once, model)
	require.NoError(t, err)

	if once.Len() != twice.Len() {
		t.Fatalf("expected idempotence: %d vs %d possibilities", once.Len(), twice.Len())
	}
}
