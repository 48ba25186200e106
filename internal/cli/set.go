package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caseline/profilectl/pkg/render"
)

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <entity> <field=value>...",
		Short: "Set field override values in the draft",
		Long: `Set one or more field override values in the entity's draft. Starts a
draft automatically if none exists.

Values parse as JSON where possible (numbers, booleans, arrays,
objects, null); anything else is taken as a plain string.

Examples:
  profilectl set case-1042 phone=555-0199
  profilectl set case-1042 smoker=false 'emails=["jane@example.com"]'
  profilectl set case-1042 dietary_notes='gluten free'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entityID := args[0]
			ctx := cmd.Context()

			edits := make(map[string]interface{}, len(args)-1)
			for _, arg := range args[1:] {
				key, value, err := parseFieldAssignment(arg)
				if err != nil {
					return err
				}
				edits[key] = value
			}

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

			// Unknown keys are caught here rather than at save time;
			// the merge engine itself tolerates them
			for key := range edits {
				if data.Schema != nil && data.Schema.FieldByKey(key) == nil {
					return fmt.Errorf("field %q does not exist in the profile's schema", key)
				}
			}

			sess.EnterEditMode()
			for key, value := range edits {
				sess.SetFieldValue(key, value)
			}

			if err := store.Save(sess); err != nil {
				return err
			}

			for key, value := range edits {
				field := data.Schema.FieldByKey(key)
				fmt.Printf("%s = %s\n", key, render.FormatValue(field, value))
			}
			return nil
		},
	}

	return cmd
}

// parseFieldAssignment splits "key=value" and decodes the value as
// JSON, falling back to the raw string for unquoted text.
func parseFieldAssignment(arg string) (string, interface{}, error) {
	parts := strings.SplitN(arg, "=", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", nil, fmt.Errorf("invalid assignment %q; expected field=value", arg)
	}

	key := parts[0]
	raw := parts[1]

	var value interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		// Not valid JSON: treat as a plain string
		return key, raw, nil
	}
	return key, value, nil
}
