package repository

import (
	"context"
	"database/sql"
)

// Category classifies shows (concert, theatre, ...).
type Category struct {
	ID   uint64
	Name string
}

// CategoryRepo manages read access to categories.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the given DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// ListAll returns all categories ordered alphabetically by name.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]Category, error) {
	const q = `SELECT id, name FROM categories ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
