package cmd

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/payroll/common"
	"github.com/tranvictor/payroll/networks"
	"github.com/tranvictor/payroll/ui"
)

type contractInfo interface {
	Owner() (string, error)
	TotalDeposited() (*big.Int, error)
	PendingRecipients(addresses []string) ([]string, error)
}

var infoCmd = &cobra.Command{
	Use:   "info [addresses...]",
	Short: "Show the Payroll contract owner, its deposit and which of the given addresses haven't withdrawn",
	RunE: func(cmd *cobra.Command, args []string) error {
		network, r, err := chainReader()
		if err != nil {
			return err
		}
		c := contract(r)
		appUI.Info("Contract %s on %s", c.Address, network.GetName())
		return runInfo(appUI, network, c, common.ScanForAddresses(strings.Join(args, " ")))
	},
}

func runInfo(u ui.UI, network networks.Network, c contractInfo, addresses []string) error {
	owner, err := c.Owner()
	if err != nil {
		return fmt.Errorf("couldn't read the contract owner: %w", err)
	}
	deposited, err := c.TotalDeposited()
	if err != nil {
		return fmt.Errorf("couldn't read the total deposit: %w", err)
	}
	u.KeyValue([][2]string{
		{"Owner", owner},
		{"Total deposited", fmt.Sprintf(
			"%s %s",
			common.BigToFloatString(deposited, network.GetNativeTokenDecimal()),
			network.GetNativeTokenSymbol(),
		)},
	})
	if len(addresses) == 0 {
		return nil
	}

	pending, err := c.PendingRecipients(addresses)
	if err != nil {
		return fmt.Errorf("couldn't read withdrawals: %w", err)
	}
	isPending := map[string]bool{}
	for _, a := range pending {
		isPending[strings.ToLower(a)] = true
	}
	rows := [][]string{}
	for i, a := range addresses {
		state := u.Style(ui.StyledText{Text: "withdrawn", Severity: ui.SeveritySuccess})
		if isPending[strings.ToLower(a)] {
			state = u.Style(ui.StyledText{Text: "pending", Severity: ui.SeverityWarn})
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), common.ChecksumAddress(a), state})
	}
	u.Table([]string{"#", "Address", "Withdrawal"}, rows)
	u.Info("%d of %d address(es) haven't withdrawn", len(pending), len(addresses))
	return nil
}

func init() {
	AddContractFlag(infoCmd)
	rootCmd.AddCommand(infoCmd)
}
