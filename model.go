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

// Package gsv implements the update semantics of Groenendijk, Stokhof and
// Veltman (GSV) for a fragment of Quantified Modal Logic: negation,
// conjunction, disjunction, conditional, the two epistemic modals, the two
// quantifiers, identity, and predication.
//
// The package consumes a Model (world/individual cardinalities plus term and
// predicate interpretation) and an Expression AST, and exposes Evaluate plus
// the semantic-relation predicates built on it, in the eval and relations
// sub-packages.
package gsv

import "fmt"

// World is an index into a model's world set.
type World int

// Individual is an index into a model's domain.
type Individual int

// Model is the external collaborator that supplies the denotations the
// evaluator needs. Concrete syntax parsing and the internal representation
// of worlds and individuals are left entirely to the implementation; the
// core only ever consumes this interface.
type Model interface {
	// WorldCardinality returns the number of worlds in the model.
	WorldCardinality() int
	// DomainCardinality returns the number of individuals in the model's
	// domain.
	DomainCardinality() int
	// TermInterpretation returns the individual denoted by a term literal at
	// a world, or an error if the term is not interpreted at that world.
	TermInterpretation(literal string, w World) (Individual, error)
	// PredicateInterpretation returns the extension of a predicate at a
	// world, as a set of argument tuples, or an error if the predicate is
	// not interpreted at that world.
	PredicateInterpretation(predicate string, w World) ([]Tuple, error)
}

// Tuple is one argument sequence in a predicate's extension.
type Tuple []Individual

// Equal reports whether two tuples have the same length and elements.
func (t Tuple) Equal(other Tuple) bool {
	if len(t) != len(other) {
		return false
	}
	for i, v := range t {
		if v != other[i] {
			return false
		}
	}
	return true
}

// ErrorKind classifies an evaluation failure. See §7 of the specification:
// these are the only failure modes the evaluator produces on its own
// (wrapping errors returned by Model are reported as-is, underneath a
// UninterpretedTerm/UninterpretedPredicate kind).
type ErrorKind int

const (
	// UnboundVariable: a variable referenced in identity or predication has
	// no peg in the current referent system.
	UnboundVariable ErrorKind = iota
	// UninterpretedTerm: a constant outside the model's term domain.
	UninterpretedTerm
	// UninterpretedPredicate: a predicate outside the model's predicate
	// domain.
	UninterpretedPredicate
	// InvalidOperator: a Unary or Binary node carries an operator outside
	// the accepted enumeration.
	InvalidOperator
	// InvalidQuantifier: a Quantification node carries a quantifier outside
	// the accepted enumeration.
	InvalidQuantifier
)

func (k ErrorKind) String() string {
	switch k {
	case UnboundVariable:
		return "unbound variable"
	case UninterpretedTerm:
		return "uninterpreted term"
	case UninterpretedPredicate:
		return "uninterpreted predicate"
	case InvalidOperator:
		return "invalid operator"
	case InvalidQuantifier:
		return "invalid quantifier"
	default:
		return "unknown error"
	}
}

// EvalError is the error kind returned directly by the evaluator (as
// opposed to an error surfacing from the Model). It implements
// error and supports errors.Is against its Kind via Unwrap-free
// comparison (EvalError values match when their Kinds are equal; Detail is
// not compared).
type EvalError struct {
	Kind   ErrorKind
	Detail string
}

func (e *EvalError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Is matches another *EvalError with the same Kind, so that
// errors.Is(err, &EvalError{Kind: UnboundVariable}) holds for any wrapped
// UnboundVariable error. A bare ErrorKind is not an error and cannot be
// used as an errors.Is target.
func (e *EvalError) Is(target error) bool {
	if other, ok := target.(*EvalError); ok {
		return e.Kind == other.Kind
	}
	return false
}

// NewEvalError constructs an *EvalError.
func NewEvalError(kind ErrorKind, detail string) *EvalError {
	return &EvalError{Kind: kind, Detail: detail}
}

// Formatter renders an Expression as a string for use in error traces. The
// core treats this as an opaque collaborator (see §6); Expression.String
// provides a default so the package is usable without one.
type Formatter func(Expression) string

// wrapEvalError formats the "In evaluating formula ...:\n..." trace
// mandated by §6/§7. fmtr may be nil, in which case expr.String is used.
func wrapEvalError(expr Expression, fmtr Formatter, err error) error {
	if err == nil {
		return nil
	}
	var printed string
	if fmtr != nil {
		printed = fmtr(expr)
	} else {
		printed = expr.String()
	}
	return fmt.Errorf("In evaluating formula %s:\n%w", printed, err)
}

// WrapEvalError is the exported form of wrapEvalError, used by the eval
// package (which lives in a separate package to keep the evaluator's
// dependency surface, e.g. zerolog and errgroup, out of this root package).
func WrapEvalError(expr Expression, fmtr Formatter, err error) error {
	return wrapEvalError(expr, fmtr, err)
}
