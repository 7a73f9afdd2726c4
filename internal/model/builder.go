package model

import (
	"context"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// Builder converts content type schemas into GeneratedModel trees.
type Builder struct {
	provider schema.Provider
	resolver *Resolver
	opts     Options
	logger   *zap.Logger
}

// New creates a Builder backed by provider with the supplied options.
func New(provider schema.Provider, options Options) *Builder {
	opts := defaultOptions()
	if options.Sanitizer != nil {
		opts.Sanitizer = options.Sanitizer
	}
	if options.InterfaceNamer != nil {
		opts.InterfaceNamer = options.InterfaceNamer
	}
	opts.TypeTable = options.TypeTable
	opts.Logger = logging.OrNop(options.Logger)

	return &Builder{
		provider: provider,
		resolver: NewResolver(provider, opts.TypeTable, opts.Logger),
		opts:     opts,
		logger:   logging.Component(opts.Logger, "builder"),
	}
}

// Resolver exposes the type resolver used by the builder.
func (b *Builder) Resolver() *Resolver {
	return b.resolver
}

// BuildRootModel builds the model for contentTypeID together with its parent
// chain. Every node of the chain carries its own compositions; renderers only
// emit them for the parentless top.
func (b *Builder) BuildRootModel(ctx context.Context, contentTypeID int) (*GeneratedModel, error) {
	if b.provider == nil {
		return nil, errors.Wrap(schema.ErrProviderUnavailable, "model builder: provider is nil")
	}

	ct, err := b.fetch(ctx, contentTypeID)
	if err != nil {
		return nil, err
	}

	return b.buildParentChain(ctx, ct, make(map[int]struct{}))
}

func (b *Builder) fetch(ctx context.Context, id int) (*schema.ContentType, error) {
	ct, err := b.provider.GetContentType(ctx, id)
	if err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, schema.NotFound(id)
	}
	return ct, nil
}

func (b *Builder) buildParentChain(ctx context.Context, ct *schema.ContentType, visited map[int]struct{}) (*GeneratedModel, error) {
	if _, seen := visited[ct.ID]; seen {
		return nil, errors.Wrapf(schema.ErrCyclicParentChain, "content type %d (%s)", ct.ID, ct.Alias)
	}
	visited[ct.ID] = struct{}{}

	className := b.opts.Sanitizer(ct.Name)
	node, err := b.generateClass(ctx, ct, ct.Groups, className)
	if err != nil {
		return nil, err
	}

	for _, group := range compositionGroups(ct) {
		compositionName := b.opts.Sanitizer(group.Name)
		composition, err := b.generateClass(ctx, ct, []*schema.PropertyGroup{group}, compositionName)
		if err != nil {
			return nil, err
		}
		composition.InterfaceName = b.opts.InterfaceNamer(compositionName)
		node.Compositions.Merge(composition)
	}

	if !ct.HasParent() {
		return node, nil
	}

	parent, err := b.fetch(ctx, ct.ParentID)
	switch {
	case errors.Is(err, schema.ErrSchemaNotFound):
		b.logger.Debug("parent content type missing, chain truncated",
			zap.Int(logging.FieldContentTypeID, ct.ID),
			zap.Int("parent_id", ct.ParentID),
		)
		return node, nil
	case err != nil:
		return nil, err
	}

	parentModel, err := b.buildParentChain(ctx, parent, visited)
	if err != nil {
		return nil, err
	}
	node.ParentClass = parentModel
	return node, nil
}

func (b *Builder) generateClass(ctx context.Context, ct *schema.ContentType, groups []*schema.PropertyGroup, className string) (*GeneratedModel, error) {
	node := &GeneratedModel{ClassName: className}

	for _, group := range groups {
		if group == nil {
			continue
		}
		groupName := b.opts.Sanitizer(group.Name)
		for _, def := range sortedByName(group.Properties) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			property, err := b.resolveProperty(ctx, ct, def)
			if err != nil {
				return nil, err
			}
			property.Group = groupName
			property.Name = MemberName(def.Alias, className)
			node.Properties = append(node.Properties, property)
		}
	}

	return node, nil
}

func (b *Builder) resolveProperty(ctx context.Context, ct *schema.ContentType, def schema.PropertyDefinition) (ResolvedProperty, error) {
	published, err := b.provider.GetPublishedProperty(ctx, ct.Alias, def.Alias)
	if err != nil && !errors.Is(err, schema.ErrPublishedPropertyNotFound) {
		return ResolvedProperty{}, err
	}
	if err != nil || published == nil {
		return ResolvedProperty{}, &schema.PropertyResolutionError{
			ContentTypeAlias: ct.Alias,
			PropertyAlias:    def.Alias,
		}
	}

	typeExpr, err := b.resolver.ResolveProperty(ctx, published.Shape, def.DataTypeID)
	if err != nil {
		return ResolvedProperty{}, errors.Wrapf(err, "resolve %s.%s", ct.Alias, def.Alias)
	}

	return ResolvedProperty{Type: typeExpr, Mandatory: def.Mandatory}, nil
}

// compositionGroups returns the composition groups that are not also declared
// directly on ct. Groups are matched by ID.
func compositionGroups(ct *schema.ContentType) []*schema.PropertyGroup {
	if len(ct.CompositionGroups) == 0 {
		return nil
	}
	declared := make(map[int]struct{}, len(ct.Groups))
	for _, group := range ct.Groups {
		if group != nil {
			declared[group.ID] = struct{}{}
		}
	}
	out := make([]*schema.PropertyGroup, 0, len(ct.CompositionGroups))
	for _, group := range ct.CompositionGroups {
		if group == nil {
			continue
		}
		if _, ok := declared[group.ID]; ok {
			continue
		}
		out = append(out, group)
	}
	return out
}

func sortedByName(props []schema.PropertyDefinition) []schema.PropertyDefinition {
	out := append([]schema.PropertyDefinition(nil), props...)
	sort.SliceStable(out, func(i, j int) bool {
		left, right := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if left != right {
			return left < right
		}
		return out[i].Name < out[j].Name
	})
	return out
}
