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

package relations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	gsv "github.com/r-caso/gsv-go"
	"github.com/r-caso/gsv-go/gsvtest"
	"github.com/r-caso/gsv-go/state"
)

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

func forAllXP() *gsv.Quantification {
	return &gsv.Quantification{
		Q:        gsv.UNIVERSAL,
		Variable: "x",
		Scope:    &gsv.Predication{Predicate: "P", Args: []gsv.Term{gsv.Var("x")}},
	}
}

func TestS5EntailsGPositive(t *testing.T) {
	model := workedModel()
	ok, err := EntailsG(context.Background(), []gsv.Expression{existsXP()}, existsXP(), model)
	require.NoError(t, err)
	if !ok {
		t.Fatal("expected ∃x.P(x) to entail itself")
	}
}

func TestS6EntailsGNegative(t *testing.T) {
	model := workedModel()
	ok, err := EntailsG(context.Background(), nil, forAllXP(), model)
	require.NoError(t, err)
	if ok {
		t.Fatal("expected ∀x.P(x) not to be entailed by no premises: w0 lacks e1 in P's extension")
	}
}

func TestEntailsIsEntailsG(t *testing.T) {
	model := workedModel()
	a, err := Entails(context.Background(), nil, forAllXP(), model)
	require.NoError(t, err)
	b, err := EntailsG(context.Background(), nil, forAllXP(), model)
	require.NoError(t, err)
	if a != b {
		t.Fatal("Entails must delegate to EntailsG")
	}
}

func TestConsistentAndAllowsAgree(t *testing.T) {
	model := workedModel()
	in := state.Create(model)
	c, err := Consistent(context.Background(), existsXP(), in, model)
	require.NoError(t, err)
	a, err := Allows(context.Background(), in, existsXP(), model)
	require.NoError(t, err)
	if c != a {
		t.Fatal("Allows must be an alias for Consistent")
	}
	if !c {
		t.Fatal("∃x.P(x) should be consistent with the ignorant state")
	}
}

func TestSupportsAndIsSupportedByAgree(t *testing.T) {
	model := workedModel()
	in := state.Create(model)
	s, err := Supports(context.Background(), in, existsXP(), model)
	require.NoError(t, err)
	sb, err := IsSupportedBy(context.Background(), existsXP(), in, model)
	require.NoError(t, err)
	if s != sb {
		t.Fatal("IsSupportedBy must be Supports with swapped argument order")
	}
}

func TestConsistentInModel(t *testing.T) {
	model := workedModel()
	ok, err := ConsistentInModel(context.Background(), existsXP(), model)
	require.NoError(t, err)
	if !ok {
		t.Fatal("∃x.P(x) should be consistent at every cardinality over this model")
	}
}

func TestCoherentInModel(t *testing.T) {
	model := workedModel()
	ok, err := CoherentInModel(context.Background(), existsXP(), model)
	require.NoError(t, err)
	if !ok {
		t.Fatal("∃x.P(x) should be coherent over this model")
	}
}

func TestEntails0(t *testing.T) {
	model := workedModel()
	ok, err := Entails0(context.Background(), []gsv.Expression{existsXP()}, existsXP(), model)
	require.NoError(t, err)
	if !ok {
		t.Fatal("Entails0 should hold for a formula entailing itself")
	}
}

func TestEntailsC(t *testing.T) {
	model := workedModel()
	ok, err := EntailsC(context.Background(), []gsv.Expression{existsXP()}, existsXP(), model)
	require.NoError(t, err)
	if !ok {
		t.Fatal("EntailsC should hold for a formula entailing itself")
	}
}

func TestEquivalentQuantifierDuality(t *testing.T) {
	// ⟦¬∃v.¬φ⟧ is similar to ⟦∀v.φ⟧ when φ is defined everywhere (§8,
	// TESTABLE PROPERTIES item 6).
	model := workedModel()
	pOfX := &gsv.Predication{Predicate: "P", Args: []gsv.Term{gsv.Var("x")}}
	notP := &gsv.Unary{Op: gsv.NEG, Scope: pOfX}
	existsNotP := &gsv.Quantification{Q: gsv.EXISTENTIAL, Variable: "x", Scope: notP}
	negExistsNotP := &gsv.Unary{Op: gsv.NEG, Scope: existsNotP}

	ok, err := Equivalent(context.Background(), negExistsNotP, forAllXP(), model)
	require.NoError(t, err)
	if !ok {
		t.Fatal("expected ¬∃x.¬P(x) to be equivalent to ∀x.P(x)")
	}
}

func TestEquivalentReflexive(t *testing.T) {
	model := workedModel()
	ok, err := Equivalent(context.Background(), existsXP(), existsXP(), model)
	require.NoError(t, err)
	if !ok {
		t.Fatal("equivalence must be reflexive")
	}
}

func TestEvaluationErrorPropagatesThroughRelations(t *testing.T) {
	model := gsvtest.New(1, 1)
	ghost := &gsv.Predication{Predicate: "Ghost"}
	_, err := Consistent(context.Background(), ghost, state.Create(model), model)
	if err == nil {
		t.Fatal("expected an evaluation error to propagate rather than be treated as relation failure")
	}
}
