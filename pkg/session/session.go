// Package session implements the edit-session state machine for a
// profile card: a local working copy of overrides and hidden flags
// layered over the server's merged view, with dirty tracking against
// the baselines captured when the profile was loaded.
package session

import (
	"github.com/caseline/profilectl/pkg/answers"
	"github.com/caseline/profilectl/pkg/profile"
)

// Mode is the session's top-level state.
type Mode string

const (
	// ModeView is the read-only state; nothing is being edited.
	ModeView Mode = "view"
	// ModeEdit means an editing session is active, with at most one
	// field in single-field edit at a time.
	ModeEdit Mode = "edit"
)

// Session is the client-local editing state for one entity's profile
// card. Nothing here reaches the server until Save. The zero value is
// not usable; construct with New.
type Session struct {
	EntityID string `json:"entity_id"`

	// BaseSubmissionID is the submission the session was seeded from.
	// A profile reload with a different id invalidates the session.
	BaseSubmissionID string `json:"base_submission_id,omitempty"`

	Mode         Mode   `json:"mode"`
	EditingField string `json:"editing_field,omitempty"`

	// EditedFields is the working copy of overrides, seeded from the
	// profile's persisted overrides on load.
	EditedFields answers.Map `json:"edited_fields"`

	// BaselineOverrides and BaselineHidden are snapshots taken at load
	// time, used only for dirty-diffing. They change on reload and
	// after a successful save, never otherwise.
	BaselineOverrides answers.Map `json:"baseline_overrides"`
	BaselineHidden    []string    `json:"baseline_hidden"`

	// HiddenFields is the working copy of hidden flags.
	HiddenFields []string `json:"hidden_fields"`

	// RevealedFields is the transient per-session peek state for
	// hidden fields. Cleared on save, cancel, and reset; never saved
	// to the server.
	RevealedFields map[string]bool `json:"revealed_fields,omitempty"`

	// StagedChanges holds the last sync result pending acceptance via
	// Save. Already folded into EditedFields; kept for the badge count
	// and status display.
	StagedChanges []profile.StagedChange `json:"staged_changes,omitempty"`

	// LatestSubmissionID, when set, graduates the profile to that
	// submission on the next save.
	LatestSubmissionID string `json:"latest_submission_id,omitempty"`

	// SectionOpen tracks per-page collapse state, all-open on load.
	SectionOpen map[int]bool `json:"section_open,omitempty"`
}

// New creates a session seeded from a freshly loaded profile.
func New(entityID string, data *profile.Data) *Session {
	s := &Session{EntityID: entityID}
	s.Reset(data)
	return s
}

// Reset re-seeds the session from profile data, discarding all pending
// local state. Called when the profile changes identity.
func (s *Session) Reset(data *profile.Data) {
	s.BaseSubmissionID = ""
	s.Mode = ModeView
	s.EditingField = ""
	s.EditedFields = answers.Map{}
	s.BaselineOverrides = answers.Map{}
	s.BaselineHidden = nil
	s.HiddenFields = nil
	s.RevealedFields = make(map[string]bool)
	s.StagedChanges = nil
	s.LatestSubmissionID = ""
	s.SectionOpen = make(map[int]bool)

	if data == nil {
		return
	}

	s.BaseSubmissionID = data.BaseSubmissionID
	s.EditedFields = answers.Clone(data.Overrides)
	s.BaselineOverrides = answers.Clone(data.Overrides)
	s.BaselineHidden = append([]string(nil), data.HiddenFields...)
	s.HiddenFields = append([]string(nil), data.HiddenFields...)

	if data.Schema != nil {
		for i := range data.Schema.Pages {
			s.SectionOpen[i] = true
		}
	}
}

// Resume reconciles a stored session with freshly loaded profile data.
// If the profile's base submission changed since the session was
// seeded, the session is reset and Resume reports true.
func (s *Session) Resume(data *profile.Data) bool {
	if data != nil && data.BaseSubmissionID == s.BaseSubmissionID {
		return false
	}
	s.Reset(data)
	return true
}

// EnterEditMode transitions View -> Edit. No-op if already editing.
func (s *Session) EnterEditMode() {
	if s.Mode == ModeEdit {
		return
	}
	s.Mode = ModeEdit
	s.EditingField = ""
}

// ExitEditMode returns to View from any state. It does not touch the
// edit buffers; save and cancel reset those separately before calling
// this.
func (s *Session) ExitEditMode() {
	s.Mode = ModeView
	s.EditingField = ""
}

// SetEditingField selects the field in single-field edit, or clears the
// selection with an empty key. Silently ignored in View mode: the
// caller is responsible for entering edit mode first.
func (s *Session) SetEditingField(key string) {
	if s.Mode != ModeEdit {
		return
	}
	s.EditingField = key
}

// SetFieldValue writes to the edit buffer unconditionally, regardless
// of mode. Callers are expected to only invoke while editing; the
// permissiveness is deliberate and kept.
func (s *Session) SetFieldValue(key string, value interface{}) {
	if s.EditedFields == nil {
		s.EditedFields = answers.Map{}
	}
	s.EditedFields[key] = value
}

// CancelFieldEdit clears the single-field editing cursor. With a
// non-empty key it also reverts that one field to its baseline
// override, or removes it entirely if the baseline never had one.
// Other pending edits are left intact.
func (s *Session) CancelFieldEdit(key string) {
	s.EditingField = ""
	if key == "" {
		return
	}
	if baseline, ok := s.BaselineOverrides[key]; ok {
		s.EditedFields[key] = answers.CloneValue(baseline)
	} else {
		delete(s.EditedFields, key)
	}
}

// CancelAllChanges discards every pending edit, hidden toggle, staged
// change, and reveal, then exits edit mode.
func (s *Session) CancelAllChanges() {
	s.EditedFields = answers.Clone(s.BaselineOverrides)
	s.HiddenFields = append([]string(nil), s.BaselineHidden...)
	s.StagedChanges = nil
	s.LatestSubmissionID = ""
	s.RevealedFields = make(map[string]bool)
	s.ExitEditMode()
}

// ToggleHidden flips a field's hidden flag in the working copy. Any
// change of hidden state, in either direction, also drops the field
// from the reveal set: a newly hidden field must not still show as
// revealed, and an unhidden field has nothing left to reveal.
func (s *Session) ToggleHidden(key string) {
	for i, k := range s.HiddenFields {
		if k == key {
			s.HiddenFields = append(s.HiddenFields[:i], s.HiddenFields[i+1:]...)
			delete(s.RevealedFields, key)
			return
		}
	}
	s.HiddenFields = append(s.HiddenFields, key)
	delete(s.RevealedFields, key)
}

// ToggleReveal flips a field's transient peek state. Independent of
// dirty tracking; never persisted.
func (s *Session) ToggleReveal(key string) {
	if s.RevealedFields == nil {
		s.RevealedFields = make(map[string]bool)
	}
	if s.RevealedFields[key] {
		delete(s.RevealedFields, key)
	} else {
		s.RevealedFields[key] = true
	}
}

// IsHidden reports the working-copy hidden flag for a field.
func (s *Session) IsHidden(key string) bool {
	for _, k := range s.HiddenFields {
		if k == key {
			return true
		}
	}
	return false
}

// IsRevealed reports whether a hidden field is temporarily unmasked.
func (s *Session) IsRevealed(key string) bool {
	return s.RevealedFields[key]
}

// IsStaged reports whether a field has a pending staged change from the
// last sync.
func (s *Session) IsStaged(key string) bool {
	for _, change := range s.StagedChanges {
		if change.FieldKey == key {
			return true
		}
	}
	return false
}

// HasChanges reports whether anything would be committed by Save. It
// is derived, never stored: overrides or hidden flags differing from
// their baselines, staged changes pending, or a submission graduation
// pending all count.
func (s *Session) HasChanges() bool {
	if !answers.SameOverrides(s.EditedFields, s.BaselineOverrides) {
		return true
	}
	if !answers.SameHidden(s.HiddenFields, s.BaselineHidden) {
		return true
	}
	if len(s.StagedChanges) > 0 {
		return true
	}
	return s.LatestSubmissionID != ""
}

// OverrideChanges lists the pending override edits against the
// baseline, sorted by field key.
func (s *Session) OverrideChanges() []answers.Change {
	return answers.Diff(s.BaselineOverrides, s.EditedFields)
}

// HiddenChanges lists the fields whose hidden flag differs from the
// baseline, sorted.
func (s *Session) HiddenChanges() []string {
	return answers.SymmetricDifference(s.BaselineHidden, s.HiddenFields)
}

// SetSectionOpen records a page's collapse state.
func (s *Session) SetSectionOpen(page int, open bool) {
	if s.SectionOpen == nil {
		s.SectionOpen = make(map[int]bool)
	}
	s.SectionOpen[page] = open
}

// IsSectionOpen reports a page's collapse state.
func (s *Session) IsSectionOpen(page int) bool {
	return s.SectionOpen[page]
}
