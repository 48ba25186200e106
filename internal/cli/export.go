package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "export <entity>",
		Short: "Export a profile card as a PDF",
		Long: `Request the rendered PDF of an entity's profile card and write it to
disk. The response is validated as a real PDF (content type and magic
bytes) before anything is written; a rendering failure surfaces the
server's explanation instead.

Examples:
  profilectl export case-1042
  profilectl export case-1042 -f /tmp/card.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID := args[0]
			ctx := cmd.Context()

			client, err := newAPIClient()
			if err != nil {
				return err
			}

			data, err := client.ExportDocument(ctx, entityID)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			if outputFile == "" {
				outputFile = fmt.Sprintf("profile-%s.pdf", entityID)
			}
			if err := os.WriteFile(outputFile, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputFile, err)
			}

			fmt.Printf("Wrote %s (%d bytes)\n", outputFile, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "file", "f", "", "Output file (default profile-<entity>.pdf)")

	return cmd
}
