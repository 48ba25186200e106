package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <entity>",
		Short: "Start or resume an editing draft",
		Long: `Start an editing draft for an entity's profile card, or resume the
existing one. Subsequent set/hide/sync commands accumulate into the
draft until 'profilectl save' commits it or 'profilectl cancel'
discards it.

Examples:
  profilectl edit case-1042`,
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
				return fmt.Errorf("entity %s has no submission yet; nothing to edit", entityID)
			}
			if stale {
				fmt.Fprintln(cmd.ErrOrStderr(), "Note: previous draft discarded; the profile has a new base submission")
			}

			resumed := sess.HasChanges()
			sess.EnterEditMode()
			if err := store.Save(sess); err != nil {
				return err
			}

			if resumed {
				fmt.Printf("Resumed draft for %s with %d pending field edit(s)\n",
					entityID, len(sess.OverrideChanges()))
			} else {
				fmt.Printf("Started draft for %s (base submission %s)\n",
					entityID, data.BaseSubmissionID)
			}
			return nil
		},
	}

	return cmd
}
