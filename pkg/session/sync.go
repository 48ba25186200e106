package session

import (
	"context"

	"github.com/caseline/profilectl/pkg/answers"
	"github.com/caseline/profilectl/pkg/api"
	"github.com/caseline/profilectl/pkg/profile"
)

// SyncOutcome reports what a sync found.
type SyncOutcome struct {
	// UpToDate is set when the latest submission matches the current
	// merged view; nothing was staged.
	UpToDate bool
	// Staged lists the changes folded into the edit buffer.
	Staged []profile.StagedChange
	// LatestSubmissionID is the submission the profile will graduate
	// to on save, when staging occurred.
	LatestSubmissionID string
}

// Sync fetches the latest submission's diff against the current merged
// view and folds it into the edit buffer. Syncing always implies an
// editing session, so a session in View first enters edit mode.
//
// An empty diff leaves the session untouched. A non-empty diff
// replaces any previous staged set wholesale and applies each new
// value to EditedFields immediately; the staged list only survives as
// the pending badge until save. Re-running recomputes, it never
// appends. An adapter error leaves the session exactly as it was.
func (s *Session) Sync(ctx context.Context, adapter api.Adapter) (*SyncOutcome, error) {
	s.EnterEditMode()

	result, err := adapter.RequestSync(ctx, s.EntityID)
	if err != nil {
		return nil, err
	}

	if len(result.StagedChanges) == 0 {
		return &SyncOutcome{UpToDate: true}, nil
	}

	s.StagedChanges = result.StagedChanges
	s.LatestSubmissionID = result.LatestSubmissionID
	for _, change := range result.StagedChanges {
		s.SetFieldValue(change.FieldKey, change.NewValue)
	}

	return &SyncOutcome{
		Staged:             result.StagedChanges,
		LatestSubmissionID: result.LatestSubmissionID,
	}, nil
}

// Save commits the session: the full edited-fields map (plus any
// pending submission graduation) in one call, then one call per
// hidden-flag change, strictly in sorted field order.
//
// The override save happens-before every hidden toggle. Toggles are
// sequential with no rollback; if one fails, the error detail lists
// the fields already flipped so the user can re-run save (each toggle
// is idempotent). On any failure the session state is left intact and
// the session stays in edit mode. On success the baselines advance to
// the committed values, staged state clears, reveals clear, and the
// session returns to View.
func (s *Session) Save(ctx context.Context, adapter api.Adapter) error {
	hasOverrideChanges := !answers.SameOverrides(s.EditedFields, s.BaselineOverrides) ||
		s.LatestSubmissionID != ""

	if hasOverrideChanges {
		if err := adapter.SaveOverrides(ctx, s.EntityID, s.EditedFields, s.LatestSubmissionID); err != nil {
			return err
		}
	}

	var applied []string
	for _, key := range answers.SymmetricDifference(s.BaselineHidden, s.HiddenFields) {
		if err := adapter.ToggleHiddenField(ctx, s.EntityID, key, s.IsHidden(key)); err != nil {
			return &PartialSaveError{Cause: err, FailedField: key, Applied: applied}
		}
		applied = append(applied, key)
	}

	s.BaselineOverrides = answers.Clone(s.EditedFields)
	s.BaselineHidden = append([]string(nil), s.HiddenFields...)
	if s.LatestSubmissionID != "" {
		s.BaseSubmissionID = s.LatestSubmissionID
	}
	s.StagedChanges = nil
	s.LatestSubmissionID = ""
	s.RevealedFields = make(map[string]bool)
	s.ExitEditMode()
	return nil
}

// PartialSaveError reports a hidden-flag toggle that failed after
// earlier toggles (and possibly the override save) already succeeded.
type PartialSaveError struct {
	Cause       error
	FailedField string
	Applied     []string
}

func (e *PartialSaveError) Error() string {
	return "failed to update hidden flag for field " + e.FailedField + ": " + e.Cause.Error()
}

func (e *PartialSaveError) Unwrap() error {
	return e.Cause
}
