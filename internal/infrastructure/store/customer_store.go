package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/retail-cli/internal/model"
)

// PostgresCustomerStore implements CustomerStore on PostgreSQL.
type PostgresCustomerStore struct {
	db *sql.DB
}

func NewPostgresCustomerStore(db *sql.DB) *PostgresCustomerStore {
	return &PostgresCustomerStore{db: db}
}

const customerColumns = "cust_id, name, email, phone, city, created_at"

func scanCustomer(row interface{ Scan(dest ...any) error }) (*model.Customer, error) {
	var c model.Customer
	var city sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &city, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.City = city.String
	return &c, nil
}

func (s *PostgresCustomerStore) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO customers (name, email, phone, city)
		VALUES ($1, $2, $3, $4)
		RETURNING `+customerColumns,
		c.Name, c.Email, c.Phone, nullString(c.City))
	return scanCustomer(row)
}

func (s *PostgresCustomerStore) GetByID(ctx context.Context, id int64) (*model.Customer, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE cust_id = $1`, id)
	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

func (s *PostgresCustomerStore) GetByEmail(ctx context.Context, email string) (*model.Customer, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE email = $1`, email)
	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

func (s *PostgresCustomerStore) Update(ctx context.Context, id int64, fields CustomerUpdate) (*model.Customer, error) {
	set := make([]string, 0, 2)
	args := make([]any, 0, 3)
	argNum := 1

	if fields.Phone != nil {
		set = append(set, fmt.Sprintf("phone = $%d", argNum))
		args = append(args, *fields.Phone)
		argNum++
	}
	if fields.City != nil {
		set = append(set, fmt.Sprintf("city = $%d", argNum))
		args = append(args, nullString(*fields.City))
		argNum++
	}

	if len(set) == 0 {
		c, found, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, sql.ErrNoRows
		}
		return c, nil
	}

	query := "UPDATE customers SET "
	for i, clause := range set {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += fmt.Sprintf(" WHERE cust_id = $%d RETURNING %s", argNum, customerColumns)
	args = append(args, id)

	return scanCustomer(s.db.QueryRowContext(ctx, query, args...))
}

func (s *PostgresCustomerStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE cust_id = $1`, id)
	return err
}

func (s *PostgresCustomerStore) List(ctx context.Context, limit int) ([]*model.Customer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY cust_id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

// Search filters by exact email and/or city, AND semantics. Empty filters
// return every customer.
func (s *PostgresCustomerStore) Search(ctx context.Context, email, city string) ([]*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	var conditions []string
	var args []any
	argNum := 1

	if email != "" {
		conditions = append(conditions, fmt.Sprintf("email = $%d", argNum))
		args = append(args, email)
		argNum++
	}
	if city != "" {
		conditions = append(conditions, fmt.Sprintf("city = $%d", argNum))
		args = append(args, city)
		argNum++
	}

	if len(conditions) > 0 {
		query += " WHERE "
		for i, cond := range conditions {
			if i > 0 {
				query += " AND "
			}
			query += cond
		}
	}
	query += " ORDER BY cust_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

func collectCustomers(rows *sql.Rows) ([]*model.Customer, error) {
	var customers []*model.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
