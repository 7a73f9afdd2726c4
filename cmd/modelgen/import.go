package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copy the content types of a source document into a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if a.cfg.Source == "" || a.cfg.DSN == "" {
				return errors.New("import requires both --source and --dsn")
			}
			s, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			catalog, err := s.orch.Catalog(ctx, a.request(0))
			if err != nil {
				return err
			}
			if err := s.store.Import(ctx, catalog); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d content types into %s\n", catalog.Len(), a.cfg.DSN)
			return err
		},
	}
}
