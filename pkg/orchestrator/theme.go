package orchestrator

import (
	"strings"

	"github.com/cockroachdb/errors"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/pkg/render"
)

// ThemeSelector resolves a theme and variant into a go-theme selection.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// resolveTheme selects the requested theme and flattens its tokens: manifest
// tokens first, then the selected variant's tokens on top.
func (o *Orchestrator) resolveTheme(name, variant string) (*render.Theme, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	if name == "" {
		name = o.defaultTheme
	}
	if variant == "" {
		variant = o.defaultVariant
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, errors.Wrapf(err, "orchestrator: select theme %q", name)
	}
	if selection == nil {
		return nil, nil
	}

	out := &render.Theme{
		Name:    selection.Theme,
		Variant: selection.Variant,
		Tokens:  make(map[string]string),
	}
	if manifest := selection.Manifest; manifest != nil {
		for key, value := range manifest.Tokens {
			out.Tokens[key] = value
		}
		if v, ok := manifest.Variants[strings.TrimSpace(selection.Variant)]; ok {
			for key, value := range v.Tokens {
				out.Tokens[key] = value
			}
		}
	}

	o.logger.Debug("theme selected",
		zap.String(logging.FieldTheme, out.Name),
		zap.String("variant", out.Variant),
		zap.Int(logging.FieldCount, len(out.Tokens)),
	)
	return out, nil
}
