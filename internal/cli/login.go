package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func newLoginCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store CRM API credentials",
		Long: `Store the CRM API URL and an access token in ~/.profilectl/config.yaml.

The token is prompted for without echo; it is never accepted as a
command-line argument so it cannot leak into shell history.

Examples:
  profilectl login --api-url https://crm.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				apiURL = viper.GetString(ConfigKeyAPIURL)
			}
			if apiURL == "" {
				fmt.Print("API URL: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read API URL: %w", err)
				}
				apiURL = strings.TrimSpace(line)
			}
			if apiURL == "" {
				return fmt.Errorf("API URL must not be empty")
			}

			fmt.Print("Access token: ")
			token, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
			if len(token) == 0 {
				return fmt.Errorf("token must not be empty")
			}

			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir := filepath.Join(home, ".profilectl")
			if err := os.MkdirAll(configDir, 0700); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			viper.Set(ConfigKeyAPIURL, apiURL)
			viper.Set(ConfigKeyToken, string(token))

			configPath := filepath.Join(configDir, "config.yaml")
			if err := viper.WriteConfigAs(configPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Printf("Credentials saved to %s\n", configPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "CRM API base URL")

	return cmd
}
