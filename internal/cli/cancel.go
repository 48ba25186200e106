package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseline/profilectl/pkg/draft"
)

func newCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <entity> [field]",
		Short: "Discard draft changes",
		Long: `Discard the entity's draft. With a field argument, only that field's
pending edit is reverted to its baseline; every other pending change
survives.

Examples:
  profilectl cancel case-1042          # discard the whole draft
  profilectl cancel case-1042 phone    # revert one field`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID := args[0]

			store, err := newDraftStore()
			if err != nil {
				return err
			}

			sess, err := store.Load(entityID)
			if err != nil {
				if errors.Is(err, draft.ErrNotFound) {
					fmt.Printf("No draft for %s\n", entityID)
					return nil
				}
				return err
			}

			if len(args) == 2 {
				field := args[1]
				sess.CancelFieldEdit(field)
				if err := store.Save(sess); err != nil {
					return err
				}
				fmt.Printf("Reverted %s; other pending changes kept\n", field)
				return nil
			}

			sess.CancelAllChanges()
			if err := store.Delete(entityID); err != nil {
				return err
			}
			fmt.Printf("Draft for %s discarded\n", entityID)
			return nil
		},
	}

	return cmd
}
