package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/example/retail-cli/internal/infrastructure/store"
)

func (a *App) runProduct(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Usage: retail product <add|list|update|delete> [flags]")
		return 2
	}

	switch args[0] {
	case "add":
		return a.productAdd(ctx, args[1:], stdout, stderr)
	case "list":
		return a.productList(ctx, args[1:], stdout, stderr)
	case "update":
		return a.productUpdate(ctx, args[1:], stdout, stderr)
	case "delete":
		return a.productDelete(ctx, args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown product action: %s\n", args[0])
		return 2
	}
}

func (a *App) productAdd(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("product add", stderr)
	name := fs.String("name", "", "product name (required)")
	sku := fs.String("sku", "", "unique SKU (required)")
	priceStr := fs.String("price", "", "unit price (required)")
	stock := fs.Int("stock", 0, "initial stock")
	category := fs.String("category", "", "optional category")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *name == "" || *sku == "" || *priceStr == "" {
		fmt.Fprintln(stderr, "product add: --name, --sku and --price are required")
		return 2
	}
	price, err := decimal.NewFromString(*priceStr)
	if err != nil {
		fmt.Fprintf(stderr, "product add: invalid --price %q\n", *priceStr)
		return 2
	}

	p, err := a.Products.Add(ctx, *name, *sku, price, *stock, *category)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "Created product", p)
}

func (a *App) productList(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("product list", stderr)
	limit := fs.Int("limit", 100, "maximum rows")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	products, err := a.Products.List(ctx, *limit)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "", products)
}

func (a *App) productUpdate(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("product update", stderr)
	id := fs.Int64("id", 0, "product id (required)")
	name := fs.String("name", "", "new name")
	sku := fs.String("sku", "", "new SKU")
	priceStr := fs.String("price", "", "new price")
	stock := fs.Int("stock", 0, "new stock")
	category := fs.String("category", "", "new category")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *id == 0 {
		fmt.Fprintln(stderr, "product update: --id is required")
		return 2
	}

	set := visited(fs)
	var fields store.ProductUpdate
	if set["name"] {
		fields.Name = name
	}
	if set["sku"] {
		fields.SKU = sku
	}
	if set["price"] {
		price, err := decimal.NewFromString(*priceStr)
		if err != nil {
			fmt.Fprintf(stderr, "product update: invalid --price %q\n", *priceStr)
			return 2
		}
		fields.Price = &price
	}
	if set["stock"] {
		fields.Stock = stock
	}
	if set["category"] {
		fields.Category = category
	}

	p, err := a.Products.Update(ctx, *id, fields)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "Updated product", p)
}

func (a *App) productDelete(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("product delete", stderr)
	id := fs.Int64("id", 0, "product id (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *id == 0 {
		fmt.Fprintln(stderr, "product delete: --id is required")
		return 2
	}

	p, err := a.Products.Delete(ctx, *id)
	if err != nil {
		return printError(stdout, err)
	}
	return printJSON(stdout, "Deleted product", p)
}
