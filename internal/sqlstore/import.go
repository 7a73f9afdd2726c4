package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// Import copies a catalog into the store in a single transaction. Content
// types already present (by id) are replaced.
func (s *Store) Import(ctx context.Context, catalog *schema.Catalog) error {
	if catalog == nil {
		return errors.New("sqlstore: catalog is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return schema.Unavailable(err, "sqlstore: begin import")
	}
	if err := importCatalog(ctx, tx, catalog); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return schema.Unavailable(err, "sqlstore: commit import")
	}
	s.logger.Info("catalog imported", zap.Int(logging.FieldCount, catalog.Len()))
	return nil
}

func importCatalog(ctx context.Context, tx *sql.Tx, catalog *schema.Catalog) error {
	types := catalog.ContentTypes()

	for _, ct := range types {
		if err := deleteContentType(ctx, tx, ct.ID); err != nil {
			return err
		}
		parentID := ct.ParentID
		if parentID < schema.NoParent {
			parentID = schema.NoParent
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO content_types (id, alias, name, parent_id) VALUES (?, ?, ?, ?)",
			ct.ID, ct.Alias, ct.Name, parentID,
		); err != nil {
			return errors.Wrapf(err, "sqlstore: insert content type %q", ct.Alias)
		}
	}

	// Declared groups first so they keep their owner; trait-only groups
	// reached through compositions are stored without one.
	for _, ct := range types {
		for i, group := range ct.Groups {
			if err := insertGroup(ctx, tx, group, ct.ID, i); err != nil {
				return err
			}
		}
	}
	for _, ct := range types {
		for i, group := range ct.CompositionGroups {
			if err := insertGroup(ctx, tx, group, nil, i); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT OR REPLACE INTO content_type_compositions (content_type_id, group_id, sort_order) VALUES (?, ?, ?)",
				ct.ID, group.ID, i,
			); err != nil {
				return errors.Wrapf(err, "sqlstore: insert composition %d of %q", group.ID, ct.Alias)
			}
		}
	}

	for _, published := range catalog.PublishedProperties() {
		encoded, err := json.Marshal(published.Shape)
		if err != nil {
			return errors.Wrapf(err, "sqlstore: encode shape of %s.%s", published.ContentTypeAlias, published.PropertyAlias)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO published_properties (content_type_alias, property_alias, shape) VALUES (?, ?, ?)",
			published.ContentTypeAlias, published.PropertyAlias, string(encoded),
		); err != nil {
			return errors.Wrapf(err, "sqlstore: insert published property %s.%s", published.ContentTypeAlias, published.PropertyAlias)
		}
	}

	for dataTypeID, bag := range catalog.Configurations() {
		if _, err := tx.ExecContext(ctx, "DELETE FROM data_type_config WHERE data_type_id = ?", dataTypeID); err != nil {
			return errors.Wrapf(err, "sqlstore: clear configuration %d", dataTypeID)
		}
		for key, value := range bag {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO data_type_config (data_type_id, config_key, config_value) VALUES (?, ?, ?)",
				dataTypeID, key, value,
			); err != nil {
				return errors.Wrapf(err, "sqlstore: insert configuration %d.%s", dataTypeID, key)
			}
		}
	}
	return nil
}

func deleteContentType(ctx context.Context, tx *sql.Tx, id int) error {
	statements := []string{
		"DELETE FROM content_type_compositions WHERE content_type_id = ?",
		"DELETE FROM property_types WHERE group_id IN (SELECT id FROM property_groups WHERE content_type_id = ?)",
		"DELETE FROM property_groups WHERE content_type_id = ?",
		"DELETE FROM content_types WHERE id = ?",
	}
	for _, statement := range statements {
		if _, err := tx.ExecContext(ctx, statement, id); err != nil {
			return errors.Wrapf(err, "sqlstore: delete content type %d", id)
		}
	}
	return nil
}

// insertGroup stores a group and its properties once; later references to
// the same group id are ignored.
func insertGroup(ctx context.Context, tx *sql.Tx, group *schema.PropertyGroup, owner any, order int) error {
	result, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO property_groups (id, content_type_id, name, sort_order) VALUES (?, ?, ?, ?)",
		group.ID, owner, group.Name, order,
	)
	if err != nil {
		return errors.Wrapf(err, "sqlstore: insert group %d", group.ID)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "sqlstore: insert group %d", group.ID)
	}
	if inserted == 0 {
		return nil
	}

	for i, prop := range group.Properties {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO property_types (group_id, alias, name, mandatory, data_type_id, sort_order) VALUES (?, ?, ?, ?, ?, ?)",
			group.ID, prop.Alias, prop.Name, prop.Mandatory, prop.DataTypeID, i,
		); err != nil {
			return errors.Wrapf(err, "sqlstore: insert property %q of group %d", prop.Alias, group.ID)
		}
	}
	return nil
}
