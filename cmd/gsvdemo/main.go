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

// Command gsvdemo runs the specification's worked end-to-end scenarios
// (S1-S6) against a small, hardcoded model, to exercise the engine without
// a concrete-syntax parser (formulas here are built with Go constructors,
// never parsed from text, keeping "the engine does not parse formulas" the
// case even for this demo).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	gsv "github.com/r-caso/gsv-go"
	"github.com/r-caso/gsv-go/eval"
	"github.com/r-caso/gsv-go/gsvtest"
	"github.com/r-caso/gsv-go/relations"
	"github.com/r-caso/gsv-go/state"
)

func newModel() *gsvtest.FiniteModel {
	m := gsvtest.New(2, 2)
	m.SetPredicate("P", 0, []gsv.Tuple{{0}})
	m.SetPredicate("P", 1, []gsv.Tuple{{0}, {1}})
	return m
}

func main() {
	var logLevel string
	var profile bool

	root := &cobra.Command{
		Use:   "gsvdemo",
		Short: "Runs the GSV update-semantics worked scenarios S1-S6",
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
				Level(level).
				With().Timestamp().Logger()
			ctx := logger.WithContext(context.Background())
			return runScenarios(ctx, &logger, profile)
		},
	}
	root.Flags().StringVar(&logLevel, "log-level", "info", "trace|debug|info|warn|error")
	root.Flags().BoolVar(&profile, "profile", false, "print per-scenario timing")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runScenarios(ctx context.Context, logger *zerolog.Logger, profile bool) error {
	model := newModel()

	run := func(name string, f func() error) error {
		start := time.Now()
		err := f()
		if profile {
			logger.Info().Str("scenario", name).Dur("elapsed", time.Since(start)).Msg("done")
		}
		return err
	}

	x := gsv.Var("x")
	pOfX := &gsv.Predication{Predicate: "P", Args: []gsv.Term{x}}
	existsXP := &gsv.Quantification{Q: gsv.EXISTENTIAL, Variable: "x", Scope: pOfX}

	return run("all", func() error {
		if err := run("S1", func() error {
			out, err := eval.Evaluate(ctx, existsXP, state.Create(model), model)
			if err != nil {
				return err
			}
			logger.Info().Int("possibilities", out.Len()).Msg("S1: ∃x.P(x)")
			return nil
		}); err != nil {
			return err
		}

		if err := run("S2", func() error {
			conj := &gsv.Binary{Op: gsv.CONJUNCTION, Left: existsXP, Right: pOfX}
			out, err := eval.Evaluate(ctx, conj, state.Create(model), model)
			if err != nil {
				return err
			}
			logger.Info().Int("possibilities", out.Len()).Msg("S2: ∃x.P(x) ∧ P(x)")
			return nil
		}); err != nil {
			return err
		}

		if err := run("S3", func() error {
			neg := &gsv.Unary{Op: gsv.NEG, Scope: existsXP}
			out, err := eval.Evaluate(ctx, neg, state.Create(model), model)
			if err != nil {
				return err
			}
			logger.Info().Int("possibilities", out.Len()).Msg("S3: ¬∃x.P(x)")
			return nil
		}); err != nil {
			return err
		}

		if err := run("S4", func() error {
			notPOfX := &gsv.Unary{Op: gsv.NEG, Scope: pOfX}
			xEqX := &gsv.Identity{Left: x, Right: x}
			conj := &gsv.Binary{Op: gsv.CONJUNCTION, Left: xEqX, Right: notPOfX}
			existsConj := &gsv.Quantification{Q: gsv.EXISTENTIAL, Variable: "x", Scope: conj}
			possible := &gsv.Unary{Op: gsv.EPISTEMIC_POSSIBILITY, Scope: existsConj}
			out, err := eval.Evaluate(ctx, possible, state.Create(model), model)
			if err != nil {
				return err
			}
			logger.Info().Int("possibilities", out.Len()).Msg("S4: ◇∃x.(x = x ∧ ¬P(x))")
			return nil
		}); err != nil {
			return err
		}

		if err := run("S5", func() error {
			ok, err := relations.EntailsG(ctx, []gsv.Expression{existsXP}, existsXP, model)
			if err != nil {
				return err
			}
			logger.Info().Bool("entails", ok).Msg("S5: ∃x.P(x) ⊨ ∃x.P(x)")
			return nil
		}); err != nil {
			return err
		}

		forAllXP := &gsv.Quantification{Q: gsv.UNIVERSAL, Variable: "x", Scope: pOfX}
		return run("S6", func() error {
			ok, err := relations.EntailsG(ctx, nil, forAllXP, model)
			if err != nil {
				return err
			}
			logger.Info().Bool("entails", ok).Msg("S6: ⊨ ∀x.P(x)")
			return nil
		})
	})
}
