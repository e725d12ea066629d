package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/retail-cli/internal/model"
)

func (a *App) runPayment(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Usage: retail payment <create|process|list> [flags]")
		return 2
	}

	switch args[0] {
	case "create":
		return a.paymentCreate(ctx, args[1:], stdout, stderr)
	case "process":
		return a.paymentProcess(ctx, args[1:], stdout, stderr)
	case "list":
		return a.paymentList(ctx, args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown payment action: %s\n", args[0])
		return 2
	}
}

// paymentCreate inserts a PENDING payment for an order's total. Order
// creation does not do this implicitly; processing fails until this has
// been run.
func (a *App) paymentCreate(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("payment create", stderr)
	orderID := fs.Int64("order", 0, "order id (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *orderID == 0 {
		fmt.Fprintln(stderr, "payment create: --order is required")
		return 2
	}

	details, err := a.Orders.GetDetails(ctx, *orderID)
	if err != nil {
		return printError(stdout, err)
	}
	p, err := a.Payments.CreatePending(ctx, *orderID, details.Order.TotalAmount)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "Created pending payment", p)
}

func (a *App) paymentProcess(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("payment process", stderr)
	orderID := fs.Int64("order", 0, "order id (required)")
	method := fs.String("method", "", "payment method: Cash, Card or UPI (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *orderID == 0 || *method == "" {
		fmt.Fprintln(stderr, "payment process: --order and --method are required")
		return 2
	}
	if !model.ValidMethod(model.PaymentMethod(*method)) {
		fmt.Fprintf(stderr, "payment process: invalid --method %q (want Cash, Card or UPI)\n", *method)
		return 2
	}

	p, err := a.Payments.Process(ctx, *orderID, model.PaymentMethod(*method))
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "Payment processed", p)
}

func (a *App) paymentList(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("payment list", stderr)
	status := fs.String("status", string(model.PaymentPending), "status filter: PENDING, PAID or REFUNDED")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	payments, err := a.Payments.ListByStatus(ctx, model.PaymentStatus(*status))
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "", payments)
}
