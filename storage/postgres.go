package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/uptrace/bun"
)

type document struct {
	bun.BaseModel `bun:"table:documents"`

	Key      string          `bun:",pk"`
	Doc      json.RawMessage `bun:"type:jsonb"`
	Revision int64
}

// PostgresStore keeps documents in a single key/jsonb/revision table.
// Conditional puts compare-and-swap on the revision column.
type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the documents table if it is missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*document)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, key string, out interface{}) (int64, error) {
	doc := new(document)
	err := s.db.NewSelect().Model(doc).Where("key = ?", key).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	if err := json.Unmarshal(doc.Doc, out); err != nil {
		return 0, err
	}
	return doc.Revision, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, doc interface{}, rev int64) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if rev == AnyRevision {
		_, err := s.db.NewInsert().
			Model(&document{Key: key, Doc: raw, Revision: 1}).
			On("CONFLICT (key) DO UPDATE").
			Set("doc = EXCLUDED.doc").
			Set("revision = documents.revision + 1").
			Exec(ctx)
		return err
	}

	res, err := s.db.NewUpdate().
		Model((*document)(nil)).
		Set("doc = ?", raw).
		Set("revision = revision + 1").
		Where("key = ? AND revision = ?", key, rev).
		Exec(ctx)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConflict
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	res, err := s.db.NewDelete().Model((*document)(nil)).Where("key = ?", key).Exec(ctx)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)
	err := s.db.NewSelect().
		Model((*document)(nil)).
		Column("key").
		Where("key LIKE ?", prefix+"%").
		Order("key ASC").
		Scan(ctx, &keys)
	if err != nil {
		return nil, err
	}
	return keys, nil
}
