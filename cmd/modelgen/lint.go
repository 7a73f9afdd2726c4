package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-modelgen/internal/openapi/parser"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check the x-modelgen extensions of OpenAPI documents",
		Long: `Check the x-modelgen extensions of OpenAPI documents. Paths default to
the configured source. Exits non-zero when any violation is found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			paths := args
			if len(paths) == 0 && a.cfg.Source != "" {
				paths = []string{a.cfg.Source}
			}
			if len(paths) == 0 {
				return errors.New("lint requires a path or --source")
			}

			p := parser.New(parser.WithLogger(a.logger))
			total := 0
			for _, path := range paths {
				raw, err := os.ReadFile(path)
				if err != nil {
					return errors.Wrapf(err, "lint %s", path)
				}
				doc, err := schema.NewDocument(schema.SourceFromFile(path), raw)
				if err != nil {
					return errors.Wrapf(err, "lint %s", path)
				}
				violations, err := p.Lint(ctx, doc)
				if err != nil {
					return errors.Wrapf(err, "lint %s", path)
				}
				for _, v := range violations {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, v)
				}
				total += len(violations)
			}
			if total > 0 {
				return errors.Newf("%d extension violations", total)
			}
			return nil
		},
	}
}
