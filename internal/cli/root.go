// Package cli implements the profilectl CLI commands.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "profilectl",
	Short: "Edit case profile cards from the command line",
	Long: `profilectl is a CLI client for the case-management CRM's profile cards.

A profile card layers case-manager overrides on top of an intake form
submission. profilectl fetches the merged view, accumulates local edits
in a draft, syncs against newer submissions, and commits the result
back to the CRM.`,
}

// Execute runs the root command. In-flight API calls are cancelled on
// interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.profilectl/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "CRM API base URL")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging of API requests")

	// Bind to viper
	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.SetEnvPrefix("PROFILECTL")
	viper.AutomaticEnv()

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newHideCmd())
	rootCmd.AddCommand(newUnhideCmd())
	rootCmd.AddCommand(newRevealCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newCancelCmd())
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newDraftsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.profilectl")
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// Read config file if it exists
	_ = viper.ReadInConfig()
}
