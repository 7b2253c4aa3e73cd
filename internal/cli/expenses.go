package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/subcommands"

	"github.com/mmynk/tripledger/internal/money"
	"github.com/mmynk/tripledger/pkg/tripapi"
)

type addExpenseCmd struct {
	app      *App
	tripID   string
	paidBy   string
	category string
}

func (*addExpenseCmd) Name() string     { return "add-expense" }
func (*addExpenseCmd) Synopsis() string { return "record an expense paid by one participant" }
func (*addExpenseCmd) Usage() string {
	return `tripctl add-expense [-trip <id>] -paid-by <participant> [-category <c>] <description> <amount>

  The payer may be given by ID or by name. The amount must be positive.
`
}

func (c *addExpenseCmd) SetFlags(f *flag.FlagSet) {
	tripFlag(f, &c.tripID)
	f.StringVar(&c.paidBy, "paid-by", "", "Participant ID or name of the payer.")
	f.StringVar(&c.category, "category", "", "Optional category label.")
}

func (c *addExpenseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		return c.app.usage(f, "expected a description and an amount")
	}
	if c.paidBy == "" {
		return c.app.usage(f, "-paid-by is required")
	}
	args := f.Args()
	amount, err := strconv.ParseFloat(args[len(args)-1], 64)
	if err != nil {
		return c.app.usage(f, "invalid amount %q", args[len(args)-1])
	}
	description := strings.Join(args[:len(args)-1], " ")

	payer, err := c.app.participantID(ctx, c.tripID, c.paidBy)
	if err != nil {
		return c.app.fail(err)
	}
	resp, err := c.app.api().AddExpense(ctx, connect.NewRequest(&tripapi.AddExpenseRequest{
		TripID:      c.tripID,
		Description: description,
		Amount:      amount,
		PaidBy:      payer,
		Category:    c.category,
	}))
	if err != nil {
		return c.app.fail(err)
	}
	expenses := resp.Msg.Trip.Expenses
	added := expenses[len(expenses)-1]
	fmt.Fprintf(c.app.out, "Added %s: %s paid by %s %s\n",
		added.Description, money.Format(added.Amount, resp.Msg.Trip.Currency), added.PayerName, added.ID)
	return subcommands.ExitSuccess
}

type rmExpenseCmd struct {
	app    *App
	tripID string
}

func (*rmExpenseCmd) Name() string     { return "rm-expense" }
func (*rmExpenseCmd) Synopsis() string { return "remove one expense" }
func (*rmExpenseCmd) Usage() string {
	return `tripctl rm-expense [-trip <id>] <expense-id>
`
}

func (c *rmExpenseCmd) SetFlags(f *flag.FlagSet) { tripFlag(f, &c.tripID) }

func (c *rmExpenseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage(f, "expected exactly one expense ID")
	}

	resp, err := c.app.api().RemoveExpense(ctx, connect.NewRequest(&tripapi.RemoveExpenseRequest{
		TripID:    c.tripID,
		ExpenseID: f.Arg(0),
	}))
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.out, "Expense removed. Total spent: %s\n", resp.Msg.Display.TotalSpent)
	return subcommands.ExitSuccess
}

type balancesCmd struct {
	app    *App
	tripID string
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "show who is owed and who owes under an equal split" }
func (*balancesCmd) Usage() string {
	return `tripctl balances [-trip <id>]

  A positive balance means the participant is owed money; negative means they owe.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) { tripFlag(f, &c.tripID) }

func (c *balancesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	resp, err := c.app.api().GetBalances(ctx, connect.NewRequest(&tripapi.GetBalancesRequest{TripID: c.tripID}))
	if err != nil {
		return c.app.fail(err)
	}
	c.app.printReport(resp.Msg.Report, resp.Msg.Display)
	return subcommands.ExitSuccess
}
