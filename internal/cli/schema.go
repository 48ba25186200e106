package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSchemaCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "schema <entity>",
		Short: "Show the form schema a profile is rendered against",
		Long: `Show the immutable form schema snapshot associated with the profile's
base submission.

Examples:
  profilectl schema case-1042
  profilectl schema case-1042 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID := args[0]

			client, err := newAPIClient()
			if err != nil {
				return err
			}

			data, err := client.GetProfile(cmd.Context(), entityID)
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}
			if data.Schema == nil {
				fmt.Println("No schema on file; the entity has no submission yet.")
				return nil
			}

			switch outputFormat {
			case "json":
				out, err := json.MarshalIndent(data.Schema, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				fmt.Println(string(out))
			case "yaml":
				out, err := yaml.Marshal(data.Schema)
				if err != nil {
					return fmt.Errorf("failed to marshal YAML: %w", err)
				}
				fmt.Print(string(out))
			default:
				for _, page := range data.Schema.Pages {
					if page.Title != "" {
						fmt.Printf("%s\n", page.Title)
					}
					for _, field := range page.Fields {
						required := ""
						if field.Required {
							required = " (required)"
						}
						fmt.Printf("  %-24s %-12s %s%s\n", field.Key, field.Type, field.Label, required)
					}
					fmt.Println()
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml")

	return cmd
}
