package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/donatello/internal/client/models"
)

// Charities lists all charities.
func (a *App) Charities(ctx context.Context) error {
	list, err := a.charities.List(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No charities yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tEMAIL")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Title, c.OrganisationEmail)
	}
	return tw.Flush()
}

// Charity prompts for an ID and prints the charity.
func (a *App) Charity(ctx context.Context) error {
	id, err := a.prompt("Charity ID")
	if err != nil {
		return err
	}

	c, err := a.charities.Get(ctx, id)
	if err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintf(a.out, "%s\n\n%s\n\nPhone: %s\nEmail: %s\n", c.Title, c.Description, c.PhoneNumber, c.OrganisationEmail)
	return nil
}

// AddCharity prompts for the charity fields and creates it.
func (a *App) AddCharity(ctx context.Context) error {
	var in models.CharityInput

	title, err := a.prompt("Title")
	if err != nil {
		return err
	}
	in.Title = title

	desc, err := readParagraph(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	in.Description = desc

	if in.PhoneNumber, err = a.prompt("Phone number"); err != nil {
		return err
	}
	if in.OrganisationEmail, err = a.prompt("Organisation email"); err != nil {
		return err
	}

	c, err := a.charities.Create(ctx, in)
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Charity created (id %s).\n", c.ID)
	return nil
}
