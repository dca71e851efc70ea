package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tranvictor/payroll/ens"
	"github.com/tranvictor/payroll/ui"
)

type recordLookup interface {
	Lookup(ctx context.Context, query string) (ens.Record, error)
}

var whoisCmd = &cobra.Command{
	Use:   "whois <name|address>...",
	Short: "Show the ENS address, primary name and avatar of names or addresses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := ensService()
		if err != nil {
			return err
		}
		return runWhois(cmd.Context(), appUI, names, args)
	},
}

func runWhois(ctx context.Context, u ui.UI, names recordLookup, queries []string) error {
	records := make([]ens.Record, len(queries))
	errs := make([]error, len(queries))
	stop := u.Spinner("Looking up ENS records")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, q := range queries {
		g.Go(func() error {
			records[i], errs[i] = names.Lookup(gctx, q)
			return nil
		})
	}
	_ = g.Wait()
	stop()

	rows := [][]string{}
	for i, q := range queries {
		rec := records[i]
		address, name, avatar := orDash(rec.Address), orDash(rec.Name), orDash(rec.Avatar)
		if errs[i] != nil {
			address = u.Style(ui.StyledText{Text: errs[i].Error(), Severity: ui.SeverityError})
		} else if rec.Address == "" {
			address = u.Style(ui.StyledText{Text: "not found", Severity: ui.SeverityWarn})
		}
		rows = append(rows, []string{q, name, address, avatar})
	}
	u.Table([]string{"Query", "Name", "Address", "Avatar"}, rows)
	return errors.Join(errs...)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(whoisCmd)
}
