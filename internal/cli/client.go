package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/caseline/profilectl/pkg/api"
	"github.com/caseline/profilectl/pkg/draft"
	"github.com/caseline/profilectl/pkg/logging"
	"github.com/caseline/profilectl/pkg/profile"
	"github.com/caseline/profilectl/pkg/session"
)

// Viper/config keys.
const (
	ConfigKeyAPIURL = "api_url"
	ConfigKeyToken  = "token"
)

// newAPIClient builds the CRM API client from config.
//
// Configuration precedence (highest to lowest):
//  1. CLI flags (--api-url)
//  2. Environment variables (PROFILECTL_API_URL, PROFILECTL_TOKEN)
//  3. ~/.profilectl/config.yaml
func newAPIClient() (*api.Client, error) {
	apiURL := viper.GetString(ConfigKeyAPIURL)
	if apiURL == "" {
		return nil, fmt.Errorf("no API URL configured; pass --api-url or run 'profilectl login'")
	}

	logger, err := logging.New(viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return api.NewClient(apiURL, viper.GetString(ConfigKeyToken), api.WithLogger(logger))
}

// newDraftStore opens the draft store under ~/.profilectl/drafts, or
// PROFILECTL_DRAFT_DIR when set.
func newDraftStore() (*draft.Store, error) {
	return draft.NewStore(viper.GetString("draft_dir"))
}

// loadEditSession fetches the profile and resumes its stored draft, or
// starts a fresh session if no draft exists. If the profile's base
// submission changed since the draft was written, the draft is stale
// and is reset; the caller is told so it can warn the user.
func loadEditSession(ctx context.Context, client *api.Client, store *draft.Store, entityID string) (*session.Session, *profile.Data, bool, error) {
	data, err := client.GetProfile(ctx, entityID)
	if err != nil {
		return nil, nil, false, err
	}

	sess, err := store.Load(entityID)
	if err != nil {
		if errors.Is(err, draft.ErrNotFound) {
			return session.New(entityID, data), data, false, nil
		}
		return nil, nil, false, err
	}

	stale := sess.Resume(data)
	return sess, data, stale, nil
}
