package metadata

import (
	"context"

	"github.com/hashicorp/go-memdb"
)

const memTable = "metadata"

var memSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		memTable: {
			Name: memTable,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "Key"},
				},
			},
		},
	},
}

type memRecord struct {
	Key   string
	Value []byte
}

// MemRepository is an in-process Repository built on hashicorp/go-memdb.
// Stored values are copied on the way in and out.
type MemRepository struct {
	db *memdb.MemDB
}

var _ Repository = (*MemRepository)(nil)

func NewMemRepository() (*MemRepository, error) {
	db, err := memdb.NewMemDB(memSchema)
	if err != nil {
		return nil, err
	}
	return &MemRepository{db: db}, nil
}

func (r *MemRepository) Get(_ context.Context, key string) ([]byte, error) {
	txn := r.db.Txn(false)
	obj, err := txn.First(memTable, "id", key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return clone(obj.(*memRecord).Value), nil
}

func (r *MemRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.SetMany(ctx, map[string][]byte{key: value})
}

func (r *MemRepository) SetMany(_ context.Context, values map[string][]byte) error {
	txn := r.db.Txn(true)
	defer txn.Abort()
	for k, v := range values {
		if err := txn.Insert(memTable, &memRecord{Key: k, Value: clone(v)}); err != nil {
			return err
		}
	}
	txn.Commit()
	return nil
}

func (r *MemRepository) Delete(_ context.Context, keys ...string) error {
	txn := r.db.Txn(true)
	defer txn.Abort()
	for _, k := range keys {
		if _, err := txn.DeleteAll(memTable, "id", k); err != nil {
			return err
		}
	}
	txn.Commit()
	return nil
}

func (r *MemRepository) List(_ context.Context) (map[string][]byte, error) {
	txn := r.db.Txn(false)
	it, err := txn.Get(memTable, "id")
	if err != nil {
		return nil, err
	}

	result := make(map[string][]byte)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		rec := obj.(*memRecord)
		result[rec.Key] = clone(rec.Value)
	}
	return result, nil
}

func (r *MemRepository) Clear(_ context.Context) error {
	txn := r.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll(memTable, "id"); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
