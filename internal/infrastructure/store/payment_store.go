package store

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/example/retail-cli/internal/model"
)

// PostgresPaymentStore implements PaymentStore on PostgreSQL.
type PostgresPaymentStore struct {
	db *sql.DB
}

func NewPostgresPaymentStore(db *sql.DB) *PostgresPaymentStore {
	return &PostgresPaymentStore{db: db}
}

const paymentColumns = "payment_id, order_id, amount, status, method, txn_ref, created_at"

func scanPayment(row interface{ Scan(dest ...any) error }) (*model.Payment, error) {
	var p model.Payment
	var method, txnRef sql.NullString
	if err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Status, &method, &txnRef, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Method = model.PaymentMethod(method.String)
	p.TxnRef = txnRef.String
	return &p, nil
}

func (s *PostgresPaymentStore) CreatePending(ctx context.Context, orderID int64, amount decimal.Decimal) (*model.Payment, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO payments (order_id, amount, status)
		VALUES ($1, $2, $3)
		RETURNING `+paymentColumns,
		orderID, amount, model.PaymentPending)
	return scanPayment(row)
}

func (s *PostgresPaymentStore) GetByOrder(ctx context.Context, orderID int64) (*model.Payment, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1`, orderID)
	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (s *PostgresPaymentStore) UpdateStatus(ctx context.Context, orderID int64, status model.PaymentStatus, method model.PaymentMethod, txnRef string) (*model.Payment, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE payments
		SET status = $1,
		    method = COALESCE($2, method),
		    txn_ref = COALESCE($3, txn_ref)
		WHERE order_id = $4
		RETURNING `+paymentColumns,
		status, nullString(string(method)), nullString(txnRef), orderID)
	return scanPayment(row)
}

func (s *PostgresPaymentStore) ListByStatus(ctx context.Context, status model.PaymentStatus) ([]*model.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE status = $1 ORDER BY payment_id`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
