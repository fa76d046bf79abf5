package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/raksonibs/waffle/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage waffle configuration",
}

var configSetSecretCmd = &cobra.Command{
	Use:   "set-secret",
	Short: "Store the OAuth client secret",
	Long: `Store the OAuth client secret in the configuration file.

Setting a client secret switches authorization to the code flow. The secret is
read from the terminal without echo and written with owner-only permissions.`,
	RunE: runConfigSetSecret,
}

func runConfigSetSecret(_ *cobra.Command, _ []string) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("set-secret needs an interactive terminal")
	}

	fmt.Fprint(os.Stderr, "Client secret: ")
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read secret: %w", err)
	}
	if len(secret) == 0 {
		return fmt.Errorf("empty secret, nothing stored")
	}

	cfg, err := file.Load(configPath)
	if err != nil {
		return err
	}
	cfg.OAuth.ClientSecret = string(secret)

	if err := file.Save(configPath, cfg); err != nil {
		return err
	}

	fmt.Println("Client secret stored; authorization will use the code flow.")
	return nil
}

func init() {
	configCmd.AddCommand(configSetSecretCmd)
	rootCmd.AddCommand(configCmd)
}
