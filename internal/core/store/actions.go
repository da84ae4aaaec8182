package store

import (
	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/planning"
)

// Action computes the next state from a private copy of the current one and
// lists the effects to run afterwards. Actions never fail and never validate
// their input.
type Action func(State) (State, []Effect)

// ── Guests ───────────────────────────────────────────────────────────────────

func AddGuest(g domain.Guest) Action {
	return func(s State) (State, []Effect) {
		s.Guests = append(s.Guests, g)
		return s, synced("Guest added")
	}
}

func UpdateGuest(id string, p GuestPatch) Action {
	return func(s State) (State, []Effect) {
		for i := range s.Guests {
			if s.Guests[i].ID == id {
				p.apply(&s.Guests[i])
			}
		}
		return s, synced("Guest updated")
	}
}

func DeleteGuest(id string) Action {
	return func(s State) (State, []Effect) {
		s.Guests = removeWhere(s.Guests, func(g domain.Guest) bool { return g.ID == id })
		return s, synced("Guest removed")
	}
}

// ── Budget ───────────────────────────────────────────────────────────────────

func AddBudgetItem(it domain.BudgetItem) Action {
	return func(s State) (State, []Effect) {
		s.BudgetItems = append(s.BudgetItems, it)
		return s, synced("Budget item added")
	}
}

// AddBudgetItems appends a batch, e.g. the tasks of a procedure step.
func AddBudgetItems(items []domain.BudgetItem) Action {
	return func(s State) (State, []Effect) {
		s.BudgetItems = append(s.BudgetItems, items...)
		return s, synced("Budget items imported")
	}
}

func UpdateBudgetItem(id string, p BudgetItemPatch) Action {
	return func(s State) (State, []Effect) {
		for i := range s.BudgetItems {
			if s.BudgetItems[i].ID == id {
				p.apply(&s.BudgetItems[i])
			}
		}
		return s, synced("Budget item updated")
	}
}

func DeleteBudgetItem(id string) Action {
	return func(s State) (State, []Effect) {
		s.BudgetItems = removeWhere(s.BudgetItems, func(it domain.BudgetItem) bool { return it.ID == id })
		return s, synced("Budget item removed")
	}
}

// RecalculateDeadlines reassigns deadlines of open items from weddingDate.
// An unparseable date leaves the state untouched and reports an error toast.
func RecalculateDeadlines(weddingDate string) Action {
	return func(s State) (State, []Effect) {
		items, err := planning.RecalculateDeadlines(s.BudgetItems, weddingDate)
		if err != nil {
			return s, []Effect{notify(domain.NotifyError, "Invalid wedding date")}
		}
		s.BudgetItems = items
		return s, synced("Deadlines updated")
	}
}

// ── Procedures ───────────────────────────────────────────────────────────────

// SetRegion switches the active ceremony guide. The region is a local
// preference and is not synced.
func SetRegion(r domain.Region) Action {
	return func(s State) (State, []Effect) {
		s.Region = r
		return s, nil
	}
}

func AddProcedureStep(region domain.Region, step domain.ProcedureStep) Action {
	return func(s State) (State, []Effect) {
		s.Procedures = ensureProcedures(s.Procedures)
		s.Procedures[region] = append(s.Procedures[region], step)
		return s, synced("Step added")
	}
}

func UpdateProcedureStep(region domain.Region, id string, p ProcedurePatch) Action {
	return func(s State) (State, []Effect) {
		steps := s.Procedures[region]
		for i := range steps {
			if steps[i].ID == id {
				p.apply(&steps[i])
			}
		}
		return s, synced("Step updated")
	}
}

func DeleteProcedureStep(region domain.Region, id string) Action {
	return func(s State) (State, []Effect) {
		if steps, ok := s.Procedures[region]; ok {
			s.Procedures[region] = removeWhere(steps, func(st domain.ProcedureStep) bool { return st.ID == id })
		}
		return s, synced("Step removed")
	}
}

// ResetProcedures restores the built-in guide of region.
func ResetProcedures(region domain.Region) Action {
	return func(s State) (State, []Effect) {
		s.Procedures = ensureProcedures(s.Procedures)
		s.Procedures[region] = planning.DefaultProceduresFor(region)
		return s, synced("Guide restored")
	}
}

// ── Invitation & feng shui ───────────────────────────────────────────────────

func UpdateInvitation(p InvitationPatch) Action {
	return func(s State) (State, []Effect) {
		p.apply(&s.Invitation)
		return s, synced("Invitation saved")
	}
}

func SetFengShuiProfile(p domain.FengShuiProfile) Action {
	return func(s State) (State, []Effect) {
		profile := p
		s.FengShuiProfile = &profile
		return s, synced("Profile saved")
	}
}

func AddFengShuiResult(r domain.FengShuiResult) Action {
	return func(s State) (State, []Effect) {
		s.FengShuiResults = append(s.FengShuiResults, r)
		return s, []Effect{ScheduleSync{}}
	}
}

// ── Session bookkeeping (no sync, no toast) ─────────────────────────────────

func IncrementUsage(kind domain.UsageKind) Action {
	return func(s State) (State, []Effect) {
		s.GuestUsage = s.GuestUsage.Increment(kind)
		return s, nil
	}
}

// RefundUsage gives back a reserved call whose completion failed.
func RefundUsage(kind domain.UsageKind) Action {
	return func(s State) (State, []Effect) {
		s.GuestUsage = s.GuestUsage.Decrement(kind)
		return s, nil
	}
}

func ResetUsage() Action {
	return func(s State) (State, []Effect) {
		s.GuestUsage = domain.GuestUsage{}
		return s, nil
	}
}

func SetUser(u *domain.User) Action {
	return func(s State) (State, []Effect) {
		s.User = cloneUser(u)
		return s, nil
	}
}

func SetRevision(rev int64) Action {
	return func(s State) (State, []Effect) {
		s.Revision = rev
		return s, nil
	}
}

func SetSyncing(on bool) Action {
	return func(s State) (State, []Effect) {
		s.IsSyncing = on
		return s, nil
	}
}

// CacheAdminUsers keeps the last admin user listing in memory only.
func CacheAdminUsers(users []domain.User) Action {
	return func(s State) (State, []Effect) {
		s.AdminUsers = cloneSlice(users)
		return s, nil
	}
}

// ApplyCloudDocument replaces the cloud-backed fields with a remote copy.
// It does not schedule a sync since the data came from the remote store.
func ApplyCloudDocument(doc domain.CloudDocument) Action {
	return func(s State) (State, []Effect) {
		c := doc.Snapshot
		s.Guests = nonNil(c.Guests)
		s.BudgetItems = nonNil(c.BudgetItems)
		if len(c.Procedures) > 0 {
			s.Procedures = cloneProcedures(c.Procedures)
		}
		s.Invitation = cloneInvitation(c.Invitation)
		s.FengShuiProfile = c.FengShuiProfile
		s.FengShuiResults = cloneResults(c.FengShuiResults)
		s.Revision = doc.Revision
		return s, nil
	}
}

func removeWhere[T any](in []T, match func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if !match(v) {
			out = append(out, v)
		}
	}
	return out
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return cloneSlice(in)
}

func ensureProcedures(p map[domain.Region][]domain.ProcedureStep) map[domain.Region][]domain.ProcedureStep {
	if p == nil {
		return make(map[domain.Region][]domain.ProcedureStep)
	}
	return p
}
