package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDraftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "drafts",
		Aliases: []string{"ls"},
		Short:   "List entities with a pending draft",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newDraftStore()
			if err != nil {
				return err
			}

			ids, err := store.List()
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Println("No drafts")
				return nil
			}

			for _, id := range ids {
				sess, err := store.Load(id)
				if err != nil {
					fmt.Printf("%-24s (unreadable: %v)\n", id, err)
					continue
				}
				fmt.Printf("%-24s %d field edit(s), %d hidden toggle(s), %d staged\n",
					id, len(sess.OverrideChanges()), len(sess.HiddenChanges()), len(sess.StagedChanges))
			}
			return nil
		},
	}

	return cmd
}
