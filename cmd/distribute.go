package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tranvictor/payroll/common"
	"github.com/tranvictor/payroll/config"
	"github.com/tranvictor/payroll/distribution"
	"github.com/tranvictor/payroll/payroll"
	"github.com/tranvictor/payroll/recipient"
	"github.com/tranvictor/payroll/resolver"
	"github.com/tranvictor/payroll/session"
	"github.com/tranvictor/payroll/ui"
)

const (
	removePrefix         = "-"
	maxConcurrentLookups = 8
)

// recipientNames is the part of ens.Service distribute needs.
type recipientNames interface {
	resolver.NameService
	ResolveAvatar(ctx context.Context, name string) (string, error)
}

var distributeCmd = &cobra.Command{
	Use:   "distribute [recipients...]",
	Short: "Pay a list of recipients in a single distributePayments transaction",
	Long: `Collects recipients and pays all of them with one transaction to the
Payroll contract.

Recipients can be given as arguments, as addresses or ENS names. They are
resolved concurrently and every one of them must resolve.

Without arguments, recipients are typed one per line. Each line is resolved
before it is added, duplicates are refused, "-<query>" removes the recipient
best matching the query and an empty line finishes the list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		network, r, err := chainReader()
		if err != nil {
			return err
		}
		names, err := ensService()
		if err != nil {
			return err
		}
		acc, err := loadAccount(appUI)
		if err != nil {
			return err
		}
		submitter := newSubmitter(appUI, network, r, acc)
		summary := [][2]string{
			{"Network", network.GetName()},
			{"Contract", contract(r).Address},
			{"From", acc.AddressHex()},
		}
		return runDistribute(cmd.Context(), appUI, names, submitter, summary, args)
	},
}

func runDistribute(
	ctx context.Context,
	u ui.UI,
	names recipientNames,
	batches distribution.BatchService,
	summary [][2]string,
	args []string,
) error {
	s := session.New(names, batches, session.Options{
		DebounceWindow: config.Debounce,
		ReverseLookup:  true,
		Logger:         logger,
	})
	defer s.Close()

	var err error
	if len(args) == 0 {
		err = collectInteractive(ctx, u, s)
	} else {
		err = collectFromArgs(ctx, u, names, s, args)
	}
	if err != nil {
		return err
	}

	list := s.Recipients()
	if list.IsEmpty() {
		return payroll.ErrNoRecipients
	}

	u.Section("Confirm payout batch")
	u.KeyValue(append(summary, [2]string{"Recipients", strconv.Itoa(list.Len())}))
	showRecipients(u, list, avatars(ctx, names, list))
	if !config.Yes && !u.Confirm(fmt.Sprintf("Pay these %d recipients in one transaction?", list.Len()), false) {
		u.Warn("Aborted, nothing was signed.")
		return nil
	}
	return submit(ctx, u, s)
}

func collectInteractive(ctx context.Context, u ui.UI, s *session.Session) error {
	u.Info("Enter one recipient per line, an address or an ENS name.")
	u.Info("Type %s<query> to remove the best matching recipient, an empty line to finish.", removePrefix)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(u.Ask(nil))
		if line == "" {
			return nil
		}
		if query, ok := strings.CutPrefix(line, removePrefix); ok {
			removeBestMatch(u, s, query)
			continue
		}

		s.SetInput(line)
		stop := u.Spinner("Resolving " + line)
		res, err := s.Resolve(ctx)
		stop()
		if err != nil {
			return err
		}
		addResolved(u, s, res)
	}
}

func addResolved(u ui.UI, s *session.Session, res resolver.Result) {
	if !res.Resolved() {
		u.Error("%s doesn't resolve to an address", res.Input)
		return
	}
	u.Interpret(describe(res.Address, res.DisplayName))
	switch s.Add() {
	case recipient.Added:
		u.Success("Added, %d recipient(s) so far", s.Recipients().Len())
	case recipient.Duplicate:
		u.Warn("%s is already in the list", res.Address)
	default:
		u.Error("%s can't be added", res.Input)
	}
}

func removeBestMatch(u ui.UI, s *session.Session, query string) {
	matches := s.Recipients().Search(query)
	if len(matches) == 0 {
		u.Warn("No recipient matches %q", query)
		return
	}
	s.Remove(matches[0].Address)
	u.Interpret("removed " + describe(matches[0].Address, matches[0].DisplayName))
}

type resolvedArg struct {
	address string
	name    string
	err     error
}

func resolveArg(ctx context.Context, names resolver.NameService, arg string) resolvedArg {
	arg = strings.TrimSpace(arg)
	switch resolver.Classify(arg) {
	case resolver.KindAddress:
		name, err := names.ResolveName(ctx, arg)
		if err != nil {
			logger.Error(err, "reverse lookup failed", "address", arg)
		}
		return resolvedArg{address: common.ChecksumAddress(arg), name: name}
	case resolver.KindName:
		addr, err := names.ResolveAddress(ctx, arg)
		if err != nil {
			return resolvedArg{err: err}
		}
		if addr == "" {
			return resolvedArg{err: errors.New("doesn't resolve to an address")}
		}
		return resolvedArg{address: addr, name: arg}
	default:
		return resolvedArg{err: errors.New("neither an address nor an ENS name")}
	}
}

// collectFromArgs resolves every argument concurrently, then adds them in
// argument order.
func collectFromArgs(ctx context.Context, u ui.UI, names resolver.NameService, s *session.Session, args []string) error {
	results := make([]resolvedArg, len(args))
	stop := u.Spinner(fmt.Sprintf("Resolving %d recipient(s)", len(args)))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, arg := range args {
		g.Go(func() error {
			results[i] = resolveArg(gctx, names, arg)
			return nil
		})
	}
	_ = g.Wait()
	stop()
	if err := ctx.Err(); err != nil {
		return err
	}

	failed := 0
	for i, r := range results {
		if r.err != nil {
			u.Error("%s: %s", args[i], r.err)
			failed++
			continue
		}
		if s.AddAddress(r.address, r.name) == recipient.Duplicate {
			u.Warn("%s is listed more than once, it is paid once", args[i])
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d recipients couldn't be resolved", failed, len(args))
	}
	return nil
}

// avatars returns the avatar of each named entry, in list order. Lookup
// failures leave the avatar empty.
func avatars(ctx context.Context, names recipientNames, list recipient.List) []string {
	entries := list.Entries()
	result := make([]string, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, e := range entries {
		if e.DisplayName == "" {
			continue
		}
		g.Go(func() error {
			avatar, err := names.ResolveAvatar(gctx, e.DisplayName)
			if err != nil {
				logger.Error(err, "avatar lookup failed", "name", e.DisplayName)
				return nil
			}
			result[i] = avatar
			return nil
		})
	}
	_ = g.Wait()
	return result
}

func showRecipients(u ui.UI, list recipient.List, avatars []string) {
	rows := [][]string{}
	for i, e := range list.Entries() {
		name := "-"
		if e.DisplayName != "" {
			name = u.Style(ui.StyledText{Text: e.DisplayName, Severity: ui.SeveritySuccess})
		}
		avatar := "-"
		if i < len(avatars) && avatars[i] != "" {
			avatar = avatars[i]
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			name,
			common.TruncateAddress(e.Address),
			avatar,
		})
	}
	u.Table([]string{"#", "Name", "Address", "Avatar"}, rows)
}

func submit(ctx context.Context, u ui.UI, s *session.Session) error {
	s.OnStatus(func(st distribution.Status) {
		logger.V(1).Info("batch status changed", "status", st.String())
	})
	stop := u.Spinner(fmt.Sprintf("Distributing payments to %d recipient(s)", s.Recipients().Len()))
	outcome := s.Submit(ctx)
	stop()
	if outcome != distribution.OutcomeSubmitted {
		return fmt.Errorf("batch was not submitted: %s", outcome)
	}

	st := s.Status()
	if st.Phase != distribution.Succeeded {
		return fmt.Errorf("distribution failed: %s", st.Message)
	}
	if st.TxHash != "" {
		u.Critical("Tx: %s", st.TxHash)
	}
	if config.DontBroadcast {
		u.Warn("Dry run, the transaction was signed but not broadcast.")
		return nil
	}
	u.Success("Payments distributed to %d recipient(s), batch %s", s.Recipients().Len(), st.BatchID)
	return nil
}

func reportSigned(u ui.UI) func(tx *types.Transaction, raw string) {
	return func(tx *types.Transaction, raw string) {
		if config.DontBroadcast || config.Verbose {
			u.Critical("Signed tx: %s", raw)
		}
	}
}

func describe(address, name string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s (%s)", address, name)
}

func init() {
	AddCommonFlagsToTransactionalCmds(distributeCmd)
	rootCmd.AddCommand(distributeCmd)
}
