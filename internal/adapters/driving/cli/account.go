package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raksonibs/waffle/internal/connectors/office"
	"github.com/raksonibs/waffle/internal/core/domain"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage connected calendar accounts",
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Connect an Office 365 account",
	Long: `Connect an Office 365 account.

An authorization window opens in a browser; after you sign in and consent,
the account is stored locally and can be synced with 'waffle sync'.`,
	RunE: runAccountAdd,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List connected accounts",
	RunE:  runAccountList,
}

var accountRemoveCmd = &cobra.Command{
	Use:   "remove [username]",
	Short: "Disconnect an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountRemove,
}

func runAccountAdd(cmd *cobra.Command, _ []string) error {
	account, err := calendarService.AddAccount(cmd.Context())
	if err != nil {
		if errors.Is(err, office.ErrAuthCancelled) {
			return fmt.Errorf("authorization window was closed before sign-in completed")
		}
		return err
	}

	fmt.Printf("Connected %s (%s)\n", account.Username, account.Name)
	return nil
}

func runAccountList(cmd *cobra.Command, _ []string) error {
	accounts, err := calendarService.Accounts(cmd.Context())
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		fmt.Println("No accounts connected. Run 'waffle account add' to connect one.")
		return nil
	}

	for _, account := range accounts {
		deltaStatus := "no checkpoint"
		if account.DeltaToken != "" {
			deltaStatus = "checkpoint stored"
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", account.Username, account.Name, account.Strategy, deltaStatus)
	}
	return nil
}

func runAccountRemove(cmd *cobra.Command, args []string) error {
	username := args[0]

	if err := calendarService.RemoveAccount(cmd.Context(), username); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no account connected for %q", username)
		}
		return err
	}

	fmt.Printf("Disconnected %s\n", username)
	return nil
}

func init() {
	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountRemoveCmd)
	rootCmd.AddCommand(accountCmd)
}
