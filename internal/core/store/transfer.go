package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/weddingplan/planner-api/internal/core/domain"
)

// ExportVersion tags the backup file format.
const ExportVersion = "1"

// ExportBundle is the user-facing backup of a planner.
type ExportBundle struct {
	Version         string                  `json:"version"`
	ExportedAt      time.Time               `json:"exported_at"`
	Guests          []domain.Guest          `json:"guests"`
	BudgetItems     []domain.BudgetItem     `json:"budget_items"`
	Invitation      domain.InvitationData   `json:"invitation"`
	FengShuiProfile *domain.FengShuiProfile `json:"feng_shui_profile,omitempty"`
	FengShuiResults []domain.FengShuiResult `json:"feng_shui_results"`
}

// Export builds a backup of s.
func Export(s State, now time.Time) ExportBundle {
	c := s.Clone()
	return ExportBundle{
		Version:         ExportVersion,
		ExportedAt:      now.UTC(),
		Guests:          nonNil(c.Guests),
		BudgetItems:     nonNil(c.BudgetItems),
		Invitation:      c.Invitation,
		FengShuiProfile: c.FengShuiProfile,
		FengShuiResults: nonNil(c.FengShuiResults),
	}
}

// ImportBundle replaces the exported fields with the content of b.
func ImportBundle(b ExportBundle) Action {
	return func(s State) (State, []Effect) {
		s.Guests = nonNil(b.Guests)
		s.BudgetItems = nonNil(b.BudgetItems)
		s.Invitation = cloneInvitation(b.Invitation)
		if b.FengShuiProfile != nil {
			p := *b.FengShuiProfile
			s.FengShuiProfile = &p
		} else {
			s.FengShuiProfile = nil
		}
		s.FengShuiResults = cloneResults(nonNil(b.FengShuiResults))
		return s, synced("Data imported")
	}
}

// DecodeBundle parses a backup file.
func DecodeBundle(data []byte) (ExportBundle, error) {
	var b ExportBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return ExportBundle{}, fmt.Errorf("decode backup: %w", err)
	}
	if b.Version != "" && b.Version != ExportVersion {
		return ExportBundle{}, fmt.Errorf("decode backup: unsupported version %q", b.Version)
	}
	return b, nil
}
