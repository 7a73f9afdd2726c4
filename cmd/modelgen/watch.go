package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/internal/watch"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce = watch.DefaultDebounce

	cmd := &cobra.Command{
		Use:   "watch <content-type-id>",
		Short: "Regenerate a content type whenever its source file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseContentTypeID(args[0])
			if err != nil {
				return err
			}
			req := a.request(id)
			if req.Source == nil || req.Source.Kind() != schema.SourceKindFile {
				return errors.New("watch requires a file --source")
			}

			s, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			w, err := watch.New(req.Source.Location(), watch.WithDebounce(debounce), watch.WithLogger(a.logger))
			if err != nil {
				return err
			}

			generate := func(ctx context.Context) error {
				output, err := s.orch.Generate(ctx, req)
				if err != nil {
					return err
				}
				return a.write(cmd.OutOrStdout(), output)
			}
			// A broken document at startup is reported like later edits.
			if err := generate(ctx); err != nil {
				a.logger.Error("generate failed", zap.Int(logging.FieldContentTypeID, id), zap.Error(err))
			}

			a.logger.Info("watching", zap.String(logging.FieldPath, w.Path()))
			if err := w.Run(ctx, generate); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before regenerating")
	return cmd
}
