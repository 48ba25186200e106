package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseline/profilectl/pkg/render"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync <entity>",
		Short: "Pull changes from the latest submission into the draft",
		Long: `Ask the CRM to diff the entity's latest form submission against the
current merged view, and fold any differences into the draft as
staged changes. 'profilectl save' accepts them; 'profilectl cancel'
discards them.

Re-running sync recomputes the staged set; it never accumulates.

Examples:
  profilectl sync case-1042`,
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
			if data.Empty() {
				return fmt.Errorf("entity %s has no submission yet; nothing to sync", entityID)
			}
			if stale {
				fmt.Fprintln(cmd.ErrOrStderr(), "Note: previous draft discarded; the profile has a new base submission")
			}

			outcome, err := sess.Sync(ctx, client)
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			// Sync enters edit mode even when nothing was staged, so
			// persist the draft either way
			if err := store.Save(sess); err != nil {
				return err
			}

			if outcome.UpToDate {
				fmt.Println("Already up to date")
				return nil
			}

			fmt.Printf("Staged %d change(s) from submission %s:\n",
				len(outcome.Staged), outcome.LatestSubmissionID)
			for _, change := range outcome.Staged {
				field := data.Schema.FieldByKey(change.FieldKey)
				fmt.Printf("  %-24s %s -> %s\n",
					change.FieldKey,
					render.FormatValue(field, change.OldValue),
					render.FormatValue(field, change.NewValue))
			}
			fmt.Println("\nRun 'profilectl save' to accept, or 'profilectl cancel' to discard.")
			return nil
		},
	}

	return cmd
}
