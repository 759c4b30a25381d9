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

package gsv

import "fmt"

// TermKind distinguishes the two kinds of term.
type TermKind int

const (
	// VARIABLE terms denote whatever their peg is assigned to in a
	// possibility.
	VARIABLE TermKind = iota
	// CONSTANT terms denote whatever the model interprets them as.
	CONSTANT
)

// Term is an argument of an Identity or Predication node: either a
// discourse variable or a model constant.
type Term struct {
	Kind    TermKind
	Literal string
}

// Var constructs a variable term.
func Var(literal string) Term { return Term{Kind: VARIABLE, Literal: literal} }

// Const constructs a constant term.
func Const(literal string) Term { return Term{Kind: CONSTANT, Literal: literal} }

func (t Term) String() string { return t.Literal }

// UnaryOp enumerates the accepted unary connectives.
type UnaryOp int

const (
	NEG UnaryOp = iota
	EPISTEMIC_POSSIBILITY
	EPISTEMIC_NECESSITY
)

// BinaryOp enumerates the accepted binary connectives.
type BinaryOp int

const (
	CONJUNCTION BinaryOp = iota
	DISJUNCTION
	CONDITIONAL
)

// Quantifier enumerates the accepted quantifiers.
type Quantifier int

const (
	EXISTENTIAL Quantifier = iota
	UNIVERSAL
)

// Expression is a node in the formula AST. The five concrete node kinds
// below are the only ones the core accepts; any other implementation of
// this interface is rejected by the evaluator with an InvalidOperator
// error the first time it is dispatched on.
type Expression interface {
	// String renders the expression using conventional logical glyphs. It
	// is the default Formatter used when none is supplied to the evaluator.
	String() string
	isExpression()
}

// Unary is ¬φ, ◇φ, or □φ.
type Unary struct {
	Op    UnaryOp
	Scope Expression
}

func (*Unary) isExpression() {}

func (u *Unary) String() string {
	var glyph string
	switch u.Op {
	case NEG:
		glyph = "¬"
	case EPISTEMIC_POSSIBILITY:
		glyph = "◇"
	case EPISTEMIC_NECESSITY:
		glyph = "□"
	default:
		glyph = "?"
	}
	return fmt.Sprintf("%s%s", glyph, u.Scope.String())
}

// Binary is φ∧ψ, φ∨ψ, or φ→ψ.
type Binary struct {
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (*Binary) isExpression() {}

func (b *Binary) String() string {
	var glyph string
	switch b.Op {
	case CONJUNCTION:
		glyph = "∧"
	case DISJUNCTION:
		glyph = "∨"
	case CONDITIONAL:
		glyph = "→"
	default:
		glyph = "?"
	}
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), glyph, b.Right.String())
}

// Quantification is ∃v.φ or ∀v.φ.
type Quantification struct {
	Q        Quantifier
	Variable string
	Scope    Expression
}

func (*Quantification) isExpression() {}

func (q *Quantification) String() string {
	var glyph string
	switch q.Q {
	case EXISTENTIAL:
		glyph = "∃"
	case UNIVERSAL:
		glyph = "∀"
	default:
		glyph = "?"
	}
	return fmt.Sprintf("%s%s.%s", glyph, q.Variable, q.Scope.String())
}

// Identity is t1 = t2.
type Identity struct {
	Left  Term
	Right Term
}

func (*Identity) isExpression() {}

func (i *Identity) String() string {
	return fmt.Sprintf("%s = %s", i.Left, i.Right)
}

// Predication is P(t1, ..., tn).
type Predication struct {
	Predicate string
	Args      []Term
}

func (*Predication) isExpression() {}

func (p *Predication) String() string {
	if len(p.Args) == 0 {
		return p.Predicate
	}
	s := p.Predicate + "("
	for i, a := range p.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}
