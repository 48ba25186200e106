package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caseline/profilectl/pkg/session"
)

func newSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <entity>",
		Short: "Commit the draft to the CRM",
		Long: `Commit the entity's draft: the full overrides map in one call (plus
the base-submission graduation when a sync staged one), then one call
per changed hidden flag.

A failed save leaves the draft intact; re-run save to retry.

Examples:
  profilectl save case-1042`,
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

			sess, _, stale, err := loadEditSession(ctx, client, store, entityID)
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}
			if stale {
				fmt.Fprintln(cmd.ErrOrStderr(), "Note: previous draft discarded; the profile has a new base submission")
			}

			if !sess.HasChanges() {
				fmt.Printf("No pending changes for %s\n", entityID)
				return store.Delete(entityID)
			}

			overrideCount := len(sess.OverrideChanges())
			hiddenCount := len(sess.HiddenChanges())
			graduating := sess.LatestSubmissionID

			if err := sess.Save(ctx, client); err != nil {
				var partial *session.PartialSaveError
				if errors.As(err, &partial) && len(partial.Applied) > 0 {
					return fmt.Errorf(
						"save partially applied: hidden flags for [%s] were committed before %q failed; re-run save to finish: %w",
						strings.Join(partial.Applied, ", "), partial.FailedField, partial.Cause)
				}
				return fmt.Errorf("save failed; draft left intact: %w", err)
			}

			// The committed state is the new baseline; the draft is spent
			if err := store.Delete(entityID); err != nil {
				return err
			}

			fmt.Printf("Saved %d field override(s) and %d hidden flag change(s)\n", overrideCount, hiddenCount)
			if graduating != "" {
				fmt.Printf("Profile graduated to submission %s\n", graduating)
			}
			return nil
		},
	}

	return cmd
}
