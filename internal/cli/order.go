package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/retail-cli/internal/domain/order"
	"github.com/example/retail-cli/internal/domain/payment"
)

// itemsFlag collects repeated --item prod_id:qty values.
type itemsFlag []order.ItemRequest

func (f *itemsFlag) String() string {
	parts := make([]string, len(*f))
	for i, item := range *f {
		parts[i] = fmt.Sprintf("%d:%d", item.ProductID, item.Quantity)
	}
	return strings.Join(parts, ",")
}

func (f *itemsFlag) Set(value string) error {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected prod_id:qty, got %q", value)
	}
	prodID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", parts[0])
	}
	qty, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", parts[1])
	}
	*f = append(*f, order.ItemRequest{ProductID: prodID, Quantity: qty})
	return nil
}

func (a *App) runOrder(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Usage: retail order <create|show|cancel|complete|list> [flags]")
		return 2
	}

	switch args[0] {
	case "create":
		return a.orderCreate(ctx, args[1:], stdout, stderr)
	case "show":
		return a.orderShow(ctx, args[1:], stdout, stderr)
	case "cancel":
		return a.orderCancel(ctx, args[1:], stdout, stderr)
	case "complete":
		return a.orderComplete(ctx, args[1:], stdout, stderr)
	case "list":
		return a.orderList(ctx, args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown order action: %s\n", args[0])
		return 2
	}
}

func (a *App) orderCreate(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("order create", stderr)
	custID := fs.Int64("customer", 0, "customer id (required)")
	var items itemsFlag
	fs.Var(&items, "item", "order line as prod_id:qty (repeatable, required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *custID == 0 || len(items) == 0 {
		fmt.Fprintln(stderr, "order create: --customer and at least one --item are required")
		return 2
	}

	details, err := a.Orders.Create(ctx, *custID, items)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "Order created", details)
}

func (a *App) orderShow(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("order show", stderr)
	orderID := fs.Int64("order", 0, "order id (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *orderID == 0 {
		fmt.Fprintln(stderr, "order show: --order is required")
		return 2
	}

	details, err := a.Orders.GetDetails(ctx, *orderID)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "", details)
}

// orderCancel cancels the order and then refunds its payment. A missing
// payment row is reported but does not undo the cancellation.
func (a *App) orderCancel(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("order cancel", stderr)
	orderID := fs.Int64("order", 0, "order id (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *orderID == 0 {
		fmt.Fprintln(stderr, "order cancel: --order is required")
		return 2
	}

	if _, err := a.Orders.Cancel(ctx, *orderID); err != nil {
		return printError(stdout, err)
	}
	if _, err := a.Payments.Refund(ctx, *orderID); err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			fmt.Fprintln(stdout, "Order cancelled (no payment to refund)")
			return 0
		}
		return printError(stdout, err)
	}
	fmt.Fprintln(stdout, "Order cancelled and payment refunded")
	return 0
}

func (a *App) orderComplete(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("order complete", stderr)
	orderID := fs.Int64("order", 0, "order id (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *orderID == 0 {
		fmt.Fprintln(stderr, "order complete: --order is required")
		return 2
	}

	if _, err := a.Orders.Complete(ctx, *orderID); err != nil {
		return printError(stdout, err)
	}
	fmt.Fprintln(stdout, "Order completed")
	return 0
}

func (a *App) orderList(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("order list", stderr)
	custID := fs.Int64("customer", 0, "customer id (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *custID == 0 {
		fmt.Fprintln(stderr, "order list: --customer is required")
		return 2
	}

	orders, err := a.Orders.ListByCustomer(ctx, *custID)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "", orders)
}
