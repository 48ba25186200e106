package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseline/profilectl/pkg/render"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <entity>",
		Short: "Show what a draft would commit",
		Long: `Show the entity's pending draft: field overrides differing from the
saved baseline, hidden-flag changes, staged changes from the last
sync, and any pending base-submission graduation.

Examples:
  profilectl status case-1042`,
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
				fmt.Fprintln(cmd.ErrOrStderr(), "Note: previous draft discarded; the profile has a new base submission")
			}

			if !sess.HasChanges() {
				fmt.Printf("No pending changes for %s\n", entityID)
				return nil
			}

			fmt.Printf("Entity: %s (mode: %s)\n\n", entityID, sess.Mode)

			overrides := sess.OverrideChanges()
			if len(overrides) > 0 {
				fmt.Println("Field overrides:")
				for _, change := range overrides {
					field := data.Schema.FieldByKey(change.Key)
					if change.Removed {
						fmt.Printf("  %-24s %s -> (override removed)\n",
							change.Key, render.FormatValue(field, change.From))
						continue
					}
					fmt.Printf("  %-24s %s -> %s\n",
						change.Key,
						render.FormatValue(field, change.From),
						render.FormatValue(field, change.To))
				}
				fmt.Println()
			}

			if hidden := sess.HiddenChanges(); len(hidden) > 0 {
				fmt.Println("Hidden flags:")
				for _, key := range hidden {
					fmt.Printf("  %-24s -> %s\n", key, hiddenWord(sess.IsHidden(key)))
				}
				fmt.Println()
			}

			if len(sess.StagedChanges) > 0 {
				fmt.Printf("Staged from sync: %d change(s)\n", len(sess.StagedChanges))
				for _, change := range sess.StagedChanges {
					field := data.Schema.FieldByKey(change.FieldKey)
					fmt.Printf("  %-24s %s -> %s\n",
						change.FieldKey,
						render.FormatValue(field, change.OldValue),
						render.FormatValue(field, change.NewValue))
				}
				fmt.Println()
			}

			if sess.LatestSubmissionID != "" {
				fmt.Printf("Save will graduate the profile to submission %s\n", sess.LatestSubmissionID)
			}

			return nil
		},
	}

	return cmd
}
