package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/subcommands"

	"github.com/mmynk/tripledger/pkg/tripapi"
)

type addPersonCmd struct {
	app    *App
	tripID string
}

func (*addPersonCmd) Name() string     { return "add-person" }
func (*addPersonCmd) Synopsis() string { return "add a participant to a trip" }
func (*addPersonCmd) Usage() string {
	return `tripctl add-person [-trip <id>] <name>
`
}

func (c *addPersonCmd) SetFlags(f *flag.FlagSet) { tripFlag(f, &c.tripID) }

func (c *addPersonCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	if strings.TrimSpace(name) == "" {
		return c.app.usage(f, "missing participant name")
	}

	resp, err := c.app.api().AddParticipant(ctx, connect.NewRequest(&tripapi.AddParticipantRequest{
		TripID: c.tripID,
		Name:   name,
	}))
	if err != nil {
		return c.app.fail(err)
	}
	participants := resp.Msg.Trip.Participants
	added := participants[len(participants)-1]
	fmt.Fprintf(c.app.out, "Added %s %s\n", added.Name, added.ID)
	return subcommands.ExitSuccess
}

type rmPersonCmd struct {
	app    *App
	tripID string
}

func (*rmPersonCmd) Name() string     { return "rm-person" }
func (*rmPersonCmd) Synopsis() string { return "remove a participant and every expense they paid" }
func (*rmPersonCmd) Usage() string {
	return `tripctl rm-person [-trip <id>] <participant-id | name>
`
}

func (c *rmPersonCmd) SetFlags(f *flag.FlagSet) { tripFlag(f, &c.tripID) }

func (c *rmPersonCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage(f, "expected exactly one participant")
	}

	participantID, err := c.app.participantID(ctx, c.tripID, f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}
	resp, err := c.app.api().RemoveParticipant(ctx, connect.NewRequest(&tripapi.RemoveParticipantRequest{
		TripID:        c.tripID,
		ParticipantID: participantID,
	}))
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.out, "Removed participant; %d expenses remain\n", len(resp.Msg.Trip.Expenses))
	return subcommands.ExitSuccess
}

// participantID accepts either an ID or a participant name (case-insensitive).
// Unmatched references are passed through so the server reports the error.
func (a *App) participantID(ctx context.Context, tripID, ref string) (string, error) {
	resp, err := a.api().GetTrip(ctx, connect.NewRequest(&tripapi.GetTripRequest{TripID: tripID}))
	if err != nil {
		return "", err
	}
	for _, p := range resp.Msg.Trip.Participants {
		if p.ID == ref {
			return ref, nil
		}
	}
	for _, p := range resp.Msg.Trip.Participants {
		if strings.EqualFold(p.Name, ref) {
			return p.ID, nil
		}
	}
	return ref, nil
}
