package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <entity>",
		Short: "Stream profile change events",
		Long: `Stream change events for an entity's profile card over the CRM's
websocket until interrupted. Useful for spotting another case
manager's edits before committing a draft.

Examples:
  profilectl watch case-1042`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID := args[0]
			ctx := cmd.Context()

			client, err := newAPIClient()
			if err != nil {
				return err
			}

			stream, err := client.Watch(ctx, entityID)
			if err != nil {
				return fmt.Errorf("failed to open event stream: %w", err)
			}
			defer stream.Close()

			fmt.Printf("Watching %s (ctrl-c to stop)\n", entityID)
			for {
				select {
				case event, ok := <-stream.Events:
					if !ok {
						return nil
					}
					line := fmt.Sprintf("%s  %s", event.OccurredAt.Format("15:04:05"), event.Type)
					if event.FieldKey != "" {
						line += "  field=" + event.FieldKey
					}
					if event.Actor != "" {
						line += "  by=" + event.Actor
					}
					fmt.Println(line)
				case err, ok := <-stream.Err:
					if !ok {
						return nil
					}
					return err
				case <-ctx.Done():
					return nil
				}
			}
		},
	}

	return cmd
}
