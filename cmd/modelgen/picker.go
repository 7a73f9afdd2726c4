package main

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-modelgen/pkg/schema"
)

// errSelectionCancelled is returned when the user aborts the picker.
var errSelectionCancelled = errors.New("selection cancelled")

// picker chooses a content type when none was given on the command line.
type picker interface {
	Pick(ctx context.Context, summaries []schema.ContentTypeSummary) (int, error)
}

type surveyPicker struct{}

func (surveyPicker) Pick(ctx context.Context, summaries []schema.ContentTypeSummary) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(summaries) == 0 {
		return 0, errors.New("no content types to choose from")
	}

	options := make([]string, len(summaries))
	for i, summary := range summaries {
		options[i] = pickerLabel(summary)
	}

	var index int
	prompt := &survey.Select{
		Message:  "Content type:",
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &index); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return 0, errSelectionCancelled
		}
		return 0, errors.Wrap(err, "prompt content type")
	}
	return summaries[index].ID, nil
}

func pickerLabel(summary schema.ContentTypeSummary) string {
	return fmt.Sprintf("%s (%s, #%d)", summary.Name, summary.Alias, summary.ID)
}
