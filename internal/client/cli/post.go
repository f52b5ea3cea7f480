package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"
)

// Posts lists fundraisers.
func (a *App) Posts(ctx context.Context) error {
	list, err := a.posts.List(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No fundraisers yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tGOAL\tENDS")
	for _, p := range list {
		ends := "-"
		if p.EndingAt != nil {
			ends = p.EndingAt.Format(time.DateOnly)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\n", p.ID, p.Title, p.Goal, ends)
	}
	return tw.Flush()
}

// Donate prompts for a fundraiser ID and an amount.
func (a *App) Donate(ctx context.Context) error {
	id, err := a.prompt("Fundraiser ID")
	if err != nil {
		return err
	}
	raw, err := a.prompt("Amount")
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Not a number: %q\n", raw)
		return err
	}

	d, err := a.posts.Donate(ctx, id, amount)
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Thank you! Donation %s of %.2f recorded.\n", d.ID, d.Amount)
	return nil
}

// Donations lists the user's donations.
func (a *App) Donations(ctx context.Context) error {
	list, err := a.posts.Donations(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No donations yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFUNDRAISER\tAMOUNT\tDATE")
	for _, d := range list {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\n", d.ID, d.FundraiseID, d.Amount, d.CreatedAt.Format(time.DateOnly))
	}
	return tw.Flush()
}
