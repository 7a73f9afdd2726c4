package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "generate [content-type-id]",
		Aliases: []string{"gen"},
		Short:   "Print the model classes for a content type",
		Long: `Print the model classes for a content type. Without an id the content
types of the source are listed in an interactive picker.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.requireInput(); err != nil {
				return err
			}
			s, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := a.contentTypeID(ctx, s, args)
			if err != nil {
				return err
			}
			output, err := s.orch.Generate(ctx, a.request(id))
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), output)
		},
	}
}

// contentTypeID takes the id from args, or asks the picker.
func (a *app) contentTypeID(ctx context.Context, s *session, args []string) (int, error) {
	if len(args) > 0 {
		return parseContentTypeID(args[0])
	}
	summaries, err := s.orch.List(ctx, a.request(0))
	if err != nil {
		return 0, err
	}
	return a.picker.Pick(ctx, summaries)
}

func parseContentTypeID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.Newf("invalid content type id %q", raw)
	}
	return id, nil
}
