package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newRenderersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "renderers",
		Short: "List the output renderers and document formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			data := pterm.TableData{{"Renderer", "Content type"}}
			for _, d := range s.orch.DescribeRenderers() {
				data = append(data, []string{d.Name, d.ContentType})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Wrap(err, "render table")
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\nFormats: %s\n", table, strings.Join(s.orch.Formats(), ", "))
			return err
		},
	}
}
