package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/retail-cli/internal/model"
)

// PostgresProductStore implements ProductStore on PostgreSQL.
type PostgresProductStore struct {
	db *sql.DB
}

func NewPostgresProductStore(db *sql.DB) *PostgresProductStore {
	return &PostgresProductStore{db: db}
}

const productColumns = "prod_id, name, sku, price, stock, category, created_at"

func scanProduct(row interface{ Scan(dest ...any) error }) (*model.Product, error) {
	var p model.Product
	var category sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.Stock, &category, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Category = category.String
	return &p, nil
}

func (s *PostgresProductStore) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO products (name, sku, price, stock, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+productColumns,
		p.Name, p.SKU, p.Price, p.Stock, nullString(p.Category))
	return scanProduct(row)
}

func (s *PostgresProductStore) GetByID(ctx context.Context, id int64) (*model.Product, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE prod_id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (s *PostgresProductStore) GetBySKU(ctx context.Context, sku string) (*model.Product, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (s *PostgresProductStore) Update(ctx context.Context, id int64, fields ProductUpdate) (*model.Product, error) {
	set := make([]string, 0, 5)
	args := make([]any, 0, 6)
	argNum := 1

	add := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, argNum))
		args = append(args, value)
		argNum++
	}

	if fields.Name != nil {
		add("name", *fields.Name)
	}
	if fields.SKU != nil {
		add("sku", *fields.SKU)
	}
	if fields.Price != nil {
		add("price", *fields.Price)
	}
	if fields.Stock != nil {
		add("stock", *fields.Stock)
	}
	if fields.Category != nil {
		add("category", nullString(*fields.Category))
	}

	if len(set) == 0 {
		p, found, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, sql.ErrNoRows
		}
		return p, nil
	}

	query := "UPDATE products SET "
	for i, clause := range set {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += fmt.Sprintf(" WHERE prod_id = $%d RETURNING %s", argNum, productColumns)
	args = append(args, id)

	return scanProduct(s.db.QueryRowContext(ctx, query, args...))
}

func (s *PostgresProductStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE prod_id = $1`, id)
	return err
}

func (s *PostgresProductStore) List(ctx context.Context, limit int) ([]*model.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY prod_id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
