package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/caseline/profilectl/pkg/answers"
	"github.com/caseline/profilectl/pkg/profile"
	"github.com/caseline/profilectl/pkg/render"
	"github.com/caseline/profilectl/pkg/session"
)

func newShowCmd() *cobra.Command {
	var (
		outputFormat string
		revealFields []string
	)

	cmd := &cobra.Command{
		Use:   "show <entity>",
		Short: "Show a profile card",
		Long: `Show the merged profile card for an entity: the base submission's
answers with overrides layered on top, plus any pending draft edits.

Hidden fields display masked; --reveal unmasks individual fields for
this invocation only.

Examples:
  profilectl show case-1042
  profilectl show case-1042 -o json
  profilectl show case-1042 --reveal ssn --reveal dob`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID := args[0]
			ctx := cmd.Context()

			client, err := newAPIClient()
			if err != nil {
				return err
			}
			store, err := newDraftStore()
			if err != nil {
				return err
			}

			sess, data, stale, err := loadEditSession(ctx, client, store, entityID)
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}
			if stale {
				fmt.Fprintln(cmd.ErrOrStderr(), "Note: draft discarded; the profile has a new base submission")
			}

			if data.Empty() {
				fmt.Println("No submission on file for this entity yet.")
				return nil
			}

			// Invocation-scoped reveals; never written back to the draft
			for _, key := range revealFields {
				if sess.IsHidden(key) && !sess.IsRevealed(key) {
					sess.ToggleReveal(key)
				}
			}

			switch outputFormat {
			case "json":
				out, err := json.MarshalIndent(displayMap(sess, data), "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				fmt.Println(string(out))
			case "yaml":
				out, err := yaml.Marshal(displayMap(sess, data))
				if err != nil {
					return fmt.Errorf("failed to marshal YAML: %w", err)
				}
				fmt.Print(string(out))
			default:
				printCard(cmd, sess, data)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml")
	cmd.Flags().StringArrayVar(&revealFields, "reveal", nil, "Unmask a hidden field for this invocation (repeatable)")

	return cmd
}

// displayMap is the machine-readable view: the merged view with draft
// edits overlaid and hidden fields masked unless revealed.
func displayMap(sess *session.Session, data *profile.Data) answers.Map {
	view := answers.MergedView(data.MergedView, sess.EditedFields)
	for key := range view {
		if sess.IsHidden(key) && !sess.IsRevealed(key) {
			view[key] = render.Mask
		}
	}
	return view
}

func printCard(cmd *cobra.Command, sess *session.Session, data *profile.Data) {
	fmt.Printf("Entity:          %s\n", sess.EntityID)
	fmt.Printf("Base submission: %s\n", data.BaseSubmissionID)
	if sess.HasChanges() {
		fmt.Printf("Draft:           %d pending field edit(s), %d hidden toggle(s)\n",
			len(sess.OverrideChanges()), len(sess.HiddenChanges()))
	}
	fmt.Println()

	for _, section := range render.Sections(data, sess) {
		if section.Title != "" {
			fmt.Printf("%s\n", section.Title)
		}
		for _, row := range section.Rows {
			marker := " "
			if row.Highlight {
				marker = "*"
			}
			label := row.Label
			if label == "" {
				label = row.Key
			}
			fmt.Printf("  %s %-24s %s\n", marker, label, row.Value)
		}
		fmt.Println()
	}

	if sess.HasChanges() {
		fmt.Println("* = overridden or staged; run 'profilectl status' for details")
	}
}
