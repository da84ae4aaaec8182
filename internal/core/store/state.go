// Package store holds the per-user planner state. Every change goes through a
// pure Action that returns the next state plus a list of effects; the Store
// publishes the new state, persists it to the local slot and runs the
// effects (notifications and the debounced cloud sync).
package store

import (
	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/planning"
)

// State is an immutable snapshot of one user's planner data. Actions receive
// a private deep copy and may modify it freely.
type State struct {
	User            *domain.User
	Guests          []domain.Guest
	BudgetItems     []domain.BudgetItem
	Region          domain.Region
	Procedures      map[domain.Region][]domain.ProcedureStep
	Invitation      domain.InvitationData
	FengShuiProfile *domain.FengShuiProfile
	FengShuiResults []domain.FengShuiResult
	GuestUsage      domain.GuestUsage
	// Revision is the remote document revision this state was last synced with.
	Revision int64

	// Ephemeral, never persisted.
	AdminUsers []domain.User
	IsSyncing  bool
}

// DefaultState is the state of a user with no saved data.
func DefaultState(user *domain.User) State {
	return State{
		User:        cloneUser(user),
		Guests:      []domain.Guest{},
		BudgetItems: []domain.BudgetItem{},
		Region:      domain.RegionNorth,
		Procedures:  planning.DefaultProcedures(),
		Invitation:  domain.InvitationData{Theme: domain.DefaultTheme},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.User = cloneUser(s.User)
	out.Guests = cloneSlice(s.Guests)
	out.BudgetItems = cloneSlice(s.BudgetItems)
	out.Procedures = cloneProcedures(s.Procedures)
	out.Invitation = cloneInvitation(s.Invitation)
	if s.FengShuiProfile != nil {
		p := *s.FengShuiProfile
		out.FengShuiProfile = &p
	}
	out.FengShuiResults = cloneResults(s.FengShuiResults)
	out.AdminUsers = cloneSlice(s.AdminUsers)
	return out
}

// Local returns the allow-listed fields written to the local slot.
func (s State) Local() domain.LocalSnapshot {
	c := s.Clone()
	return domain.LocalSnapshot{
		User:            c.User,
		Guests:          c.Guests,
		BudgetItems:     c.BudgetItems,
		Region:          c.Region,
		Procedures:      c.Procedures,
		Invitation:      c.Invitation,
		FengShuiProfile: c.FengShuiProfile,
		FengShuiResults: c.FengShuiResults,
		GuestUsage:      c.GuestUsage,
		Revision:        c.Revision,
	}
}

// Cloud returns the allow-listed fields pushed to the remote document.
func (s State) Cloud() domain.CloudSnapshot {
	c := s.Clone()
	return domain.CloudSnapshot{
		Guests:          c.Guests,
		BudgetItems:     c.BudgetItems,
		Procedures:      c.Procedures,
		Invitation:      c.Invitation,
		FengShuiProfile: c.FengShuiProfile,
		FengShuiResults: c.FengShuiResults,
	}
}

// FromLocal rebuilds a state from a local snapshot, filling gaps with
// defaults so a partially written slot still yields a usable state.
func FromLocal(snap domain.LocalSnapshot, user *domain.User) State {
	if user == nil {
		user = snap.User
	}
	st := DefaultState(user)
	if snap.Guests != nil {
		st.Guests = snap.Guests
	}
	if snap.BudgetItems != nil {
		st.BudgetItems = snap.BudgetItems
	}
	if snap.Region != "" {
		st.Region = snap.Region
	}
	if len(snap.Procedures) > 0 {
		st.Procedures = snap.Procedures
	}
	if snap.Invitation.Theme != "" || snap.Invitation.GroomName != "" || snap.Invitation.BrideName != "" {
		st.Invitation = snap.Invitation
	}
	st.FengShuiProfile = snap.FengShuiProfile
	st.FengShuiResults = snap.FengShuiResults
	st.GuestUsage = snap.GuestUsage
	st.Revision = snap.Revision
	return st.Clone()
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func cloneProcedures(in map[domain.Region][]domain.ProcedureStep) map[domain.Region][]domain.ProcedureStep {
	if in == nil {
		return nil
	}
	out := make(map[domain.Region][]domain.ProcedureStep, len(in))
	for r, steps := range in {
		out[r] = planning.CloneSteps(steps)
	}
	return out
}

func cloneInvitation(in domain.InvitationData) domain.InvitationData {
	in.Gallery = append([]string(nil), in.Gallery...)
	return in
}

func cloneResults(in []domain.FengShuiResult) []domain.FengShuiResult {
	if in == nil {
		return nil
	}
	out := make([]domain.FengShuiResult, len(in))
	for i, r := range in {
		r.GoodDates = append([]string(nil), r.GoodDates...)
		out[i] = r
	}
	return out
}
