package cli

import (
	"context"
	"fmt"
	"io"
)

func (a *App) runReport(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Usage: retail report <top-products|revenue|customer-orders|frequent-customers> [flags]")
		return 2
	}

	switch args[0] {
	case "top-products":
		return a.reportTopProducts(ctx, args[1:], stdout, stderr)
	case "revenue":
		return a.reportRevenue(ctx, args[1:], stdout, stderr)
	case "customer-orders":
		return a.reportCustomerOrders(ctx, stdout)
	case "frequent-customers":
		return a.reportFrequentCustomers(ctx, args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown report: %s\n", args[0])
		return 2
	}
}

func (a *App) reportTopProducts(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("report top-products", stderr)
	top := fs.Int("top", 5, "number of products")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	sales, err := a.Reports.TopSellingProducts(ctx, *top)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "", sales)
}

func (a *App) reportRevenue(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("report revenue", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	total, err := a.Reports.RevenueLastMonth(ctx)
	if err != nil {
		return printError(stdout, err)
	}
	fmt.Fprintf(stdout, "Revenue (last 30 days): %s\n", total)
	return 0
}

func (a *App) reportCustomerOrders(ctx context.Context, stdout io.Writer) int {
	counts, err := a.Reports.OrdersByCustomer(ctx)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "", counts)
}

func (a *App) reportFrequentCustomers(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("report frequent-customers", stderr)
	min := fs.Int("min", 2, "minimum order count (exclusive)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	frequent, err := a.Reports.FrequentCustomers(ctx, *min)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "", frequent)
}
