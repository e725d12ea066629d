package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/retail-cli/internal/infrastructure/store"
)

func (a *App) runCustomer(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Usage: retail customer <add|list|update|delete|search> [flags]")
		return 2
	}

	switch args[0] {
	case "add":
		return a.customerAdd(ctx, args[1:], stdout, stderr)
	case "list":
		return a.customerList(ctx, args[1:], stdout, stderr)
	case "update":
		return a.customerUpdate(ctx, args[1:], stdout, stderr)
	case "delete":
		return a.customerDelete(ctx, args[1:], stdout, stderr)
	case "search":
		return a.customerSearch(ctx, args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown customer action: %s\n", args[0])
		return 2
	}
}

func (a *App) customerAdd(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("customer add", stderr)
	name := fs.String("name", "", "customer name (required)")
	email := fs.String("email", "", "unique email (required)")
	phone := fs.String("phone", "", "phone number (required)")
	city := fs.String("city", "", "optional city")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *name == "" || *email == "" || *phone == "" {
		fmt.Fprintln(stderr, "customer add: --name, --email and --phone are required")
		return 2
	}

	c, err := a.Customers.Add(ctx, *name, *email, *phone, *city)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "Created customer", c)
}

func (a *App) customerList(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("customer list", stderr)
	limit := fs.Int("limit", 100, "maximum rows")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	customers, err := a.Customers.List(ctx, *limit)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "", customers)
}

func (a *App) customerUpdate(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("customer update", stderr)
	id := fs.Int64("id", 0, "customer id (required)")
	phone := fs.String("phone", "", "new phone")
	city := fs.String("city", "", "new city")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *id == 0 {
		fmt.Fprintln(stderr, "customer update: --id is required")
		return 2
	}

	set := visited(fs)
	var fields store.CustomerUpdate
	if set["phone"] {
		fields.Phone = phone
	}
	if set["city"] {
		fields.City = city
	}

	c, err := a.Customers.Update(ctx, *id, fields)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "Updated customer", c)
}

func (a *App) customerDelete(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("customer delete", stderr)
	id := fs.Int64("id", 0, "customer id (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *id == 0 {
		fmt.Fprintln(stderr, "customer delete: --id is required")
		return 2
	}

	c, err := a.Customers.Delete(ctx, *id)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "Deleted customer", c)
}

func (a *App) customerSearch(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("customer search", stderr)
	email := fs.String("email", "", "exact email filter")
	city := fs.String("city", "", "exact city filter")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	customers, err := a.Customers.Search(ctx, *email, *city)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "", customers)
}
