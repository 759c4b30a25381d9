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

// Package gsvtest provides FiniteModel, a minimal in-memory gsv.Model
// implementation. It exists only as a test and demo fixture: the spec
// treats the concrete model as an external collaborator (§1), and no
// production code in this repository imports this package.
package gsvtest

import (
	"fmt"

	gsv "github.com/r-caso/gsv-go"
)

// FiniteModel is a finite model with explicit per-world term and predicate
// tables, modeled on the teacher's in-memory DBPred.database table (a bare
// slice/map, no persistence).
type FiniteModel struct {
	worlds int
	domain int
	terms  map[termKey]gsv.Individual
	preds  map[predKey][]gsv.Tuple
}

type termKey struct {
	literal string
	world   gsv.World
}

type predKey struct {
	predicate string
	world     gsv.World
}

// New returns a FiniteModel with the given world and individual
// cardinalities, and no term or predicate interpretations yet.
func New(worldCount, domainCount int) *FiniteModel {
	return &FiniteModel{
		worlds: worldCount,
		domain: domainCount,
		terms:  map[termKey]gsv.Individual{},
		preds:  map[predKey][]gsv.Tuple{},
	}
}

// WorldCardinality implements gsv.Model.
func (m *FiniteModel) WorldCardinality() int { return m.worlds }

// DomainCardinality implements gsv.Model.
func (m *FiniteModel) DomainCardinality() int { return m.domain }

// SetTerm fixes the denotation of a constant literal at a world.
func (m *FiniteModel) SetTerm(literal string, w gsv.World, d gsv.Individual) {
	m.terms[termKey{literal, w}] = d
}

// SetPredicate fixes the extension of a predicate at a world.
func (m *FiniteModel) SetPredicate(predicate string, w gsv.World, extension []gsv.Tuple) {
	m.preds[predKey{predicate, w}] = extension
}

// TermInterpretation implements gsv.Model.
func (m *FiniteModel) TermInterpretation(literal string, w gsv.World) (gsv.Individual, error) {
	d, ok := m.terms[termKey{literal, w}]
	if !ok {
		return 0, fmt.Errorf("term %q is not interpreted at world %d", literal, w)
	}
	return d, nil
}

// PredicateInterpretation implements gsv.Model.
func (m *FiniteModel) PredicateInterpretation(predicate string, w gsv.World) ([]gsv.Tuple, error) {
	ext, ok := m.preds[predKey{predicate, w}]
	if !ok {
		return nil, fmt.Errorf("predicate %q is not interpreted at world %d", predicate, w)
	}
	return ext, nil
}
