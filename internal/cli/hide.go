package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHideCmd() *cobra.Command {
	return newHiddenToggleCmd("hide", "Mask a field's value in read view", true)
}

func newUnhideCmd() *cobra.Command {
	return newHiddenToggleCmd("unhide", "Stop masking a field's value in read view", false)
}

// newHiddenToggleCmd builds hide/unhide, which differ only in the
// target state. The toggle lands in the draft; 'profilectl save'
// commits it.
func newHiddenToggleCmd(use, short string, wantHidden bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <entity> <field>...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID := args[0]
			fields := args[1:]
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

			for _, field := range fields {
				if data.Schema != nil && data.Schema.FieldByKey(field) == nil {
					return fmt.Errorf("field %q does not exist in the profile's schema", field)
				}
				if sess.IsHidden(field) == wantHidden {
					fmt.Printf("%s is already %s\n", field, hiddenWord(wantHidden))
					continue
				}
				sess.ToggleHidden(field)
				fmt.Printf("%s marked %s (pending save)\n", field, hiddenWord(wantHidden))
			}

			return store.Save(sess)
		},
	}
	return cmd
}

func hiddenWord(hidden bool) string {
	if hidden {
		return "hidden"
	}
	return "visible"
}

func newRevealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal <entity> <field>...",
		Short: "Toggle a temporary unmask of hidden fields",
		Long: `Toggle the session-local reveal of hidden fields. Reveals affect what
'profilectl show' prints for this draft; they are never committed to
the CRM and are cleared by save and cancel.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID := args[0]
			fields := args[1:]
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

			for _, field := range fields {
				if !sess.IsHidden(field) {
					fmt.Printf("%s is not hidden; nothing to reveal\n", field)
					continue
				}
				sess.ToggleReveal(field)
				if sess.IsRevealed(field) {
					fmt.Printf("%s revealed\n", field)
				} else {
					fmt.Printf("%s masked again\n", field)
				}
			}

			return store.Save(sess)
		},
	}
	return cmd
}
