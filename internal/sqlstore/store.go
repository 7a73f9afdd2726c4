// Package sqlstore implements the schema provider contracts over a SQL
// database. The bundled migrations target SQLite through modernc.org/sqlite.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/pkg/schema"

	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Store reads content type descriptors from SQL tables.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Ensure the store satisfies the provider contracts.
var (
	_ schema.Provider = (*Store)(nil)
	_ schema.Lister   = (*Store)(nil)
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New wraps an open database handle. The caller owns the handle.
func New(db *sql.DB, options ...Option) *Store {
	s := &Store{db: db}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = logging.Component(s.logger, "sqlstore")
	return s
}

// Open opens a SQLite database, applies migrations and returns a Store that
// owns the handle.
func Open(ctx context.Context, dsn string, options ...Option) (*Store, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, schema.Unavailable(err, "sqlstore: open %s", dsn)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, schema.Unavailable(err, "sqlstore: ping %s", dsn)
	}

	store := New(db, options...)
	if err := Migrate(ctx, db, store.logger); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "sqlstore: migrate")
	}
	return store, nil
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the underlying handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetContentType implements schema.Provider.
func (s *Store) GetContentType(ctx context.Context, id int) (*schema.ContentType, error) {
	ct := &schema.ContentType{ID: id}
	err := s.db.QueryRowContext(ctx,
		"SELECT alias, name, parent_id FROM content_types WHERE id = ?", id,
	).Scan(&ct.Alias, &ct.Name, &ct.ParentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, schema.NotFound(id)
	}
	if err != nil {
		return nil, schema.Unavailable(err, "sqlstore: content type %d", id)
	}

	ct.Groups, err = s.groups(ctx,
		"SELECT id, name FROM property_groups WHERE content_type_id = ? ORDER BY sort_order, id", id)
	if err != nil {
		return nil, err
	}
	ct.CompositionGroups, err = s.groups(ctx,
		`SELECT g.id, g.name FROM content_type_compositions c
		JOIN property_groups g ON g.id = c.group_id
		WHERE c.content_type_id = ? ORDER BY c.sort_order, g.id`, id)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("content type loaded",
		zap.Int(logging.FieldContentTypeID, id),
		zap.String(logging.FieldContentType, ct.Alias),
	)
	return ct, nil
}

func (s *Store) groups(ctx context.Context, query string, contentTypeID int) ([]*schema.PropertyGroup, error) {
	rows, err := s.db.QueryContext(ctx, query, contentTypeID)
	if err != nil {
		return nil, schema.Unavailable(err, "sqlstore: groups of content type %d", contentTypeID)
	}
	var groups []*schema.PropertyGroup
	for rows.Next() {
		group := &schema.PropertyGroup{}
		if err := rows.Scan(&group.ID, &group.Name); err != nil {
			_ = rows.Close()
			return nil, schema.Unavailable(err, "sqlstore: scan group")
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, schema.Unavailable(err, "sqlstore: groups of content type %d", contentTypeID)
	}
	_ = rows.Close()

	for _, group := range groups {
		if group.Properties, err = s.properties(ctx, group.ID); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (s *Store) properties(ctx context.Context, groupID int) ([]schema.PropertyDefinition, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT alias, name, mandatory, data_type_id FROM property_types WHERE group_id = ? ORDER BY sort_order, id", groupID)
	if err != nil {
		return nil, schema.Unavailable(err, "sqlstore: properties of group %d", groupID)
	}
	defer rows.Close()

	var props []schema.PropertyDefinition
	for rows.Next() {
		var prop schema.PropertyDefinition
		if err := rows.Scan(&prop.Alias, &prop.Name, &prop.Mandatory, &prop.DataTypeID); err != nil {
			return nil, schema.Unavailable(err, "sqlstore: scan property")
		}
		props = append(props, prop)
	}
	if err := rows.Err(); err != nil {
		return nil, schema.Unavailable(err, "sqlstore: properties of group %d", groupID)
	}
	return props, nil
}

// GetPublishedProperty implements schema.Provider.
func (s *Store) GetPublishedProperty(ctx context.Context, contentTypeAlias, propertyAlias string) (*schema.PublishedProperty, error) {
	published := &schema.PublishedProperty{}
	var encoded string
	err := s.db.QueryRowContext(ctx,
		`SELECT content_type_alias, property_alias, shape FROM published_properties
		WHERE content_type_alias = ? AND property_alias = ?`, contentTypeAlias, propertyAlias,
	).Scan(&published.ContentTypeAlias, &published.PropertyAlias, &encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(schema.ErrPublishedPropertyNotFound, "%s.%s", contentTypeAlias, propertyAlias)
	}
	if err != nil {
		return nil, schema.Unavailable(err, "sqlstore: published property %s.%s", contentTypeAlias, propertyAlias)
	}
	if err := json.Unmarshal([]byte(encoded), &published.Shape); err != nil {
		return nil, errors.Wrapf(err, "sqlstore: decode shape of %s.%s", contentTypeAlias, propertyAlias)
	}
	return published, nil
}

// GetPropertyConfiguration implements schema.Provider. Unknown data types
// yield an empty bag.
func (s *Store) GetPropertyConfiguration(ctx context.Context, dataTypeID int) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT config_key, config_value FROM data_type_config WHERE data_type_id = ?", dataTypeID)
	if err != nil {
		return nil, schema.Unavailable(err, "sqlstore: configuration of data type %d", dataTypeID)
	}
	defer rows.Close()

	bag := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, schema.Unavailable(err, "sqlstore: scan configuration")
		}
		bag[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, schema.Unavailable(err, "sqlstore: configuration of data type %d", dataTypeID)
	}
	return bag, nil
}

// ListContentTypes implements schema.Lister.
func (s *Store) ListContentTypes(ctx context.Context) ([]schema.ContentTypeSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ct.id, ct.alias, ct.name FROM content_types ct
		WHERE EXISTS (SELECT 1 FROM property_groups g WHERE g.content_type_id = ct.id)
		ORDER BY ct.name, ct.id`)
	if err != nil {
		return nil, schema.Unavailable(err, "sqlstore: list content types")
	}
	defer rows.Close()

	var out []schema.ContentTypeSummary
	for rows.Next() {
		var summary schema.ContentTypeSummary
		if err := rows.Scan(&summary.ID, &summary.Alias, &summary.Name); err != nil {
			return nil, schema.Unavailable(err, "sqlstore: scan content type")
		}
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, schema.Unavailable(err, "sqlstore: list content types")
	}
	return out, nil
}
