package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/google/subcommands"

	"github.com/mmynk/tripledger/pkg/tripapi"
)

type createCmd struct {
	app      *App
	currency string
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a trip and make it the active one" }
func (*createCmd) Usage() string {
	return `tripctl create [-currency <code>] <name>

  Creates a trip. The currency code is free text and defaults to USD.
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "Currency code shown next to amounts (default USD).")
}

func (c *createCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	if strings.TrimSpace(name) == "" {
		return c.app.usage(f, "missing trip name")
	}

	resp, err := c.app.api().CreateTrip(ctx, connect.NewRequest(&tripapi.CreateTripRequest{
		Name:     name,
		Currency: c.currency,
	}))
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.out, "Created trip %q (%s) %s\n", resp.Msg.Trip.Name, resp.Msg.Trip.Currency, resp.Msg.Trip.ID)
	return subcommands.ExitSuccess
}

type tripsCmd struct {
	app *App
}

func (*tripsCmd) Name() string     { return "trips" }
func (*tripsCmd) Synopsis() string { return "list every trip with its total spent" }
func (*tripsCmd) Usage() string {
	return `tripctl trips

  Lists trips in creation order. The active trip is marked with '*'.
`
}
func (*tripsCmd) SetFlags(*flag.FlagSet) {}

func (c *tripsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	resp, err := c.app.api().ListTrips(ctx, connect.NewRequest(&tripapi.ListTripsRequest{}))
	if err != nil {
		return c.app.fail(err)
	}
	if len(resp.Msg.Trips) == 0 {
		fmt.Fprintln(c.app.out, "No trips yet.")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tNAME\tTOTAL\tPEOPLE\tEXPENSES\tID")
	for _, t := range resp.Msg.Trips {
		marker := ""
		if t.Active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			marker, t.Name, t.TotalSpentText, t.ParticipantCount, t.ExpenseCount, t.ID)
	}
	w.Flush()
	return subcommands.ExitSuccess
}

type selectCmd struct {
	app *App
}

func (*selectCmd) Name() string     { return "select" }
func (*selectCmd) Synopsis() string { return "make a trip the active one" }
func (*selectCmd) Usage() string {
	return `tripctl select <trip-id>
`
}
func (*selectCmd) SetFlags(*flag.FlagSet) {}

func (c *selectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage(f, "expected exactly one trip ID")
	}

	resp, err := c.app.api().SelectTrip(ctx, connect.NewRequest(&tripapi.SelectTripRequest{TripID: f.Arg(0)}))
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.out, "Active trip: %s\n", resp.Msg.Trip.Name)
	return subcommands.ExitSuccess
}

type showCmd struct {
	app    *App
	tripID string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show participants, expenses and balances of a trip" }
func (*showCmd) Usage() string {
	return `tripctl show [-trip <id>]
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) { tripFlag(f, &c.tripID) }

func (c *showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	resp, err := c.app.api().GetTrip(ctx, connect.NewRequest(&tripapi.GetTripRequest{TripID: c.tripID}))
	if err != nil {
		return c.app.fail(err)
	}
	c.app.printTrip(resp.Msg)
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	app    *App
	tripID string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a trip with all its participants and expenses" }
func (*deleteCmd) Usage() string {
	return `tripctl delete [-trip <id>]
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) { tripFlag(f, &c.tripID) }

func (c *deleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := c.app.api().DeleteTrip(ctx, connect.NewRequest(&tripapi.DeleteTripRequest{TripID: c.tripID})); err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintln(c.app.out, "Trip deleted.")
	return subcommands.ExitSuccess
}

type currencyCmd struct {
	app    *App
	tripID string
}

func (*currencyCmd) Name() string     { return "currency" }
func (*currencyCmd) Synopsis() string { return "change the currency code of a trip" }
func (*currencyCmd) Usage() string {
	return `tripctl currency [-trip <id>] <code>

  Only the label changes; amounts are not converted.
`
}

func (c *currencyCmd) SetFlags(f *flag.FlagSet) { tripFlag(f, &c.tripID) }

func (c *currencyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage(f, "expected exactly one currency code")
	}

	resp, err := c.app.api().SetCurrency(ctx, connect.NewRequest(&tripapi.SetCurrencyRequest{
		TripID:   c.tripID,
		Currency: f.Arg(0),
	}))
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.out, "Currency of %s is now %s\n", resp.Msg.Trip.Name, resp.Msg.Trip.Currency)
	return subcommands.ExitSuccess
}
