package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/retail-cli/internal/model"
)

const (
	EventPaymentPaid     = "payment.paid"
	EventPaymentRefunded = "payment.refunded"
)

type PaymentPaid struct {
	OrderID int64               `json:"order_id"`
	Amount  decimal.Decimal     `json:"amount"`
	Method  model.PaymentMethod `json:"method"`
	TxnRef  string              `json:"txn_ref"`
	PaidAt  time.Time           `json:"paid_at"`
}

type PaymentRefunded struct {
	OrderID    int64           `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	RefundedAt time.Time       `json:"refunded_at"`
}
