package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/example/retail-cli/internal/domain/customer"
	"github.com/example/retail-cli/internal/domain/order"
	"github.com/example/retail-cli/internal/domain/payment"
	"github.com/example/retail-cli/internal/domain/product"
	"github.com/example/retail-cli/internal/report"
)

// App bundles the services behind the command surface.
type App struct {
	Products  *product.Service
	Customers *customer.Service
	Orders    *order.Service
	Payments  *payment.Service
	Reports   *report.Service
}

// Run dispatches `retail <entity> <action> [flags]`. Service errors are
// printed and swallowed ("print and continue"); only usage mistakes exit
// non-zero.
func (a *App) Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		a.usage(stderr)
		return 2
	}

	switch args[1] {
	case "product":
		return a.runProduct(ctx, args[2:], stdout, stderr)
	case "customer":
		return a.runCustomer(ctx, args[2:], stdout, stderr)
	case "order":
		return a.runOrder(ctx, args[2:], stdout, stderr)
	case "payment":
		return a.runPayment(ctx, args[2:], stdout, stderr)
	case "report":
		return a.runReport(ctx, args[2:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[1])
		a.usage(stderr)
		return 2
	}
}

func (a *App) usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: retail <command> <action> [flags]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  product  add | list | update | delete")
	fmt.Fprintln(w, "  customer add | list | update | delete | search")
	fmt.Fprintln(w, "  order    create | show | cancel | complete | list")
	fmt.Fprintln(w, "  payment  create | process | list")
	fmt.Fprintln(w, "  report   top-products | revenue | customer-orders | frequent-customers")
}

// printJSON renders a value as indented JSON, with an optional label line.
func printJSON(w io.Writer, label string, v any) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return printError(w, err)
	}
	if label != "" {
		fmt.Fprintf(w, "%s: %s\n", label, data)
	} else {
		fmt.Fprintf(w, "%s\n", data)
	}
	return 0
}

// printError reports a service failure without propagating an exit code.
func printError(w io.Writer, err error) int {
	fmt.Fprintln(w, "Error:", err)
	return 0
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// visited reports which flags were explicitly set on the command line, so
// partial updates only touch supplied fields.
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
