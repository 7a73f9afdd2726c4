package orchestrator

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// loadCatalog turns the request's document or source into a Catalog. An
// explicit Format selects the adapter (which also loads the source);
// otherwise the document is loaded once and every registered adapter is
// asked to detect it.
func (o *Orchestrator) loadCatalog(ctx context.Context, req Request) (*schema.Catalog, error) {
	if o.adapterRegistry == nil {
		return nil, errors.New("orchestrator: adapter registry is nil")
	}

	var (
		adapter schema.FormatAdapter
		doc     schema.Document
		err     error
	)

	if format := strings.TrimSpace(req.Format); format != "" {
		adapter, err = o.adapterRegistry.Get(format)
		if err != nil {
			return nil, err
		}
		doc, err = o.documentFor(ctx, req, adapter.Load)
		if err != nil {
			return nil, err
		}
	} else {
		doc, err = o.documentFor(ctx, req, o.loadDocument)
		if err != nil {
			return nil, err
		}
		adapter, err = o.detectAdapter(doc)
		if err != nil {
			return nil, err
		}
	}

	catalog, err := adapter.Normalize(ctx, doc)
	if err != nil {
		return nil, errors.Wrapf(err, "orchestrator: normalise %s document", adapter.Name())
	}
	o.logger.Debug("schema document normalised",
		zap.String(logging.FieldAdapter, adapter.Name()),
		zap.String(logging.FieldSource, doc.Location()),
		zap.Int(logging.FieldCount, catalog.Len()),
	)
	return catalog, nil
}

func (o *Orchestrator) documentFor(ctx context.Context, req Request, load func(context.Context, schema.Source) (schema.Document, error)) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, errors.Wrap(err, "orchestrator: load document")
	}
	return doc, nil
}

func (o *Orchestrator) loadDocument(ctx context.Context, src schema.Source) (schema.Document, error) {
	if o.loader == nil {
		return schema.Document{}, errors.New("orchestrator: loader is nil")
	}
	return o.loader.Load(ctx, src)
}

func (o *Orchestrator) detectAdapter(doc schema.Document) (schema.FormatAdapter, error) {
	matches := o.adapterRegistry.Detect(doc.Source(), doc.Raw())
	switch len(matches) {
	case 0:
		if o.defaultAdapter == "" {
			return nil, errors.New("orchestrator: unable to detect format")
		}
		return o.adapterRegistry.Get(o.defaultAdapter)
	case 1:
		return matches[0], nil
	default:
		return nil, errors.Newf("orchestrator: multiple adapters matched payload (%s), specify format", formatAdapterNames(matches))
	}
}

func formatAdapterNames(adapters []schema.FormatAdapter) string {
	names := make([]string, 0, len(adapters))
	for _, adapter := range adapters {
		if adapter == nil {
			continue
		}
		if name := strings.TrimSpace(adapter.Name()); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
