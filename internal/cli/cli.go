// Package cli implements tripctl, the command-line client of the trip ledger server.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/google/subcommands"

	"github.com/mmynk/tripledger/internal/config"
	"github.com/mmynk/tripledger/internal/money"
	"github.com/mmynk/tripledger/pkg/tripapi"
	"github.com/mmynk/tripledger/pkg/tripapi/tripapiconnect"
)

const defaultAddr = "http://localhost:8080"

type clientConfig struct {
	Addr string `env:"TRIPLEDGER_ADDR" envDefault:"http://localhost:8080"`
}

// App carries what every command needs. A CLI run is short lived, so one App per process.
type App struct {
	addr       string
	httpClient connect.HTTPClient
	out        io.Writer
	errOut     io.Writer
	client     tripapiconnect.TripServiceClient
}

// Run parses args, dispatches to the selected command and returns its exit status.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) subcommands.ExitStatus {
	return run(ctx, args, http.DefaultClient, stdout, stderr)
}

func run(ctx context.Context, args []string, httpClient connect.HTTPClient, stdout, stderr io.Writer) subcommands.ExitStatus {
	app := &App{httpClient: httpClient, out: stdout, errOut: stderr}

	fs := flag.NewFlagSet("tripctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&app.addr, "addr", envAddr(), "Base URL of the tripledger server (env TRIPLEDGER_ADDR).")

	commander := subcommands.NewCommander(fs, "tripctl")
	commander.Output = stdout
	commander.Error = stderr
	Register(commander, app)

	if err := fs.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}
	return commander.Execute(ctx)
}

// Register the subcommands.
func Register(c *subcommands.Commander, app *App) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&createCmd{app: app}, "trips")
	c.Register(&tripsCmd{app: app}, "trips")
	c.Register(&selectCmd{app: app}, "trips")
	c.Register(&showCmd{app: app}, "trips")
	c.Register(&deleteCmd{app: app}, "trips")
	c.Register(&currencyCmd{app: app}, "trips")

	c.Register(&addPersonCmd{app: app}, "participants")
	c.Register(&rmPersonCmd{app: app}, "participants")

	c.Register(&addExpenseCmd{app: app}, "expenses")
	c.Register(&rmExpenseCmd{app: app}, "expenses")
	c.Register(&balancesCmd{app: app}, "expenses")
}

func envAddr() string {
	var cfg clientConfig
	if err := config.ParseEnv(&cfg); err != nil || cfg.Addr == "" {
		return defaultAddr
	}
	return cfg.Addr
}

func (a *App) api() tripapiconnect.TripServiceClient {
	if a.client == nil {
		a.client = tripapiconnect.NewTripServiceClient(a.httpClient, a.addr)
	}
	return a.client
}

// fail prints err and returns the failure status. Connect errors are reduced to their message.
func (a *App) fail(err error) subcommands.ExitStatus {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		fmt.Fprintf(a.errOut, "tripctl: %s: %s\n", connectErr.Code(), connectErr.Message())
	} else {
		fmt.Fprintf(a.errOut, "tripctl: %v\n", err)
	}
	return subcommands.ExitFailure
}

func (a *App) usage(f *flag.FlagSet, format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(a.errOut, "tripctl %s: %s\n", f.Name(), fmt.Sprintf(format, args...))
	return subcommands.ExitUsageError
}

// tripFlag registers the -trip flag shared by every command that acts on one trip.
func tripFlag(f *flag.FlagSet, dst *string) {
	f.StringVar(dst, "trip", "", "Trip ID (defaults to the active trip).")
}

func (a *App) printTrip(resp *tripapi.TripResponse) {
	trip := resp.Trip
	fmt.Fprintf(a.out, "Trip: %s (%s)\n", trip.Name, trip.Currency)
	fmt.Fprintf(a.out, "ID:   %s\n\n", trip.ID)

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICIPANT\tID")
	for _, p := range trip.Participants {
		fmt.Fprintf(w, "%s\t%s\n", p.Name, p.ID)
	}
	w.Flush()
	fmt.Fprintln(a.out)

	if len(trip.Expenses) == 0 {
		fmt.Fprintln(a.out, "No expenses yet.")
	} else {
		w = tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DESCRIPTION\tAMOUNT\tPAID BY\tCATEGORY\tID")
		for _, e := range trip.Expenses {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.Description, money.Format(e.Amount, trip.Currency), e.PayerName, e.Category, e.ID)
		}
		w.Flush()
	}
	fmt.Fprintln(a.out)

	a.printReport(resp.Report, resp.Display)
}

func (a *App) printReport(report *tripapi.BalanceReport, display *tripapi.ReportDisplay) {
	fmt.Fprintf(a.out, "People: %d  Expenses: %d  Total: %s  Per person: %s\n",
		report.PeopleCount, report.ExpenseCount, display.TotalSpent, display.PerPerson)

	if report.PeopleCount == 0 || report.ExpenseCount == 0 {
		fmt.Fprintln(a.out, "No data yet, add participants and expenses first.")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "NAME\tPAID\tSHOULD PAY\tBALANCE\t")
	for _, row := range display.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", row.Name, row.PaidTotal, row.ShouldPay, row.Balance)
	}
	w.Flush()

	if report.Settled {
		fmt.Fprintln(a.out, "Everyone is settled up.")
	}
}
