package planning

import (
	"time"

	"github.com/weddingplan/planner-api/internal/core/domain"
)

// GuestStats summarises the guest list.
type GuestStats struct {
	Invitations        int                       `json:"invitations"`
	Headcount          int                       `json:"headcount"`
	WeightedAttendance float64                   `json:"weighted_attendance"`
	ExpectedGifts      float64                   `json:"expected_gifts"`
	ByGroup            map[domain.GuestGroup]int `json:"by_group"`
}

// BudgetStats summarises the budget.
type BudgetStats struct {
	Items          int                         `json:"items"`
	TotalEstimated int64                       `json:"total_estimated"`
	TotalActual    int64                       `json:"total_actual"`
	ByStatus       map[domain.BudgetStatus]int `json:"by_status"`
	ActualBySide   map[domain.Side]int64       `json:"actual_by_side"`
	Overdue        int                         `json:"overdue"`
	Progress       float64                     `json:"progress"`
}

// Stats backs the dashboard.
type Stats struct {
	Guests        GuestStats  `json:"guests"`
	Budget        BudgetStats `json:"budget"`
	DaysToWedding *int        `json:"days_to_wedding,omitempty"`
}

// ComputeGuestStats aggregates guests. Each guest contributes
// (1 + children) * probability to the weighted attendance.
func ComputeGuestStats(guests []domain.Guest) GuestStats {
	st := GuestStats{ByGroup: make(map[domain.GuestGroup]int)}
	for _, g := range guests {
		w := g.Probability.Weight()
		st.Invitations++
		st.Headcount += g.Headcount()
		st.WeightedAttendance += float64(g.Headcount()) * w
		st.ExpectedGifts += float64(g.ExpectedGift) * w
		st.ByGroup[g.Group]++
	}
	return st
}

// ComputeBudgetStats aggregates budget items. An item is overdue when its
// deadline is strictly before today and it is not settled.
func ComputeBudgetStats(items []domain.BudgetItem, today time.Time) BudgetStats {
	st := BudgetStats{
		ByStatus:     make(map[domain.BudgetStatus]int),
		ActualBySide: make(map[domain.Side]int64),
	}
	day := truncateDay(today)
	settled := 0
	for _, it := range items {
		st.Items++
		st.TotalEstimated += it.EstimatedCost
		st.TotalActual += it.ActualCost
		st.ByStatus[it.Status]++
		st.ActualBySide[it.Side] += it.ActualCost
		if it.Status.Settled() {
			settled++
			continue
		}
		if it.Deadline == "" {
			continue
		}
		if d, err := ParseDate(it.Deadline); err == nil && d.Before(day) {
			st.Overdue++
		}
	}
	if st.Items > 0 {
		st.Progress = float64(settled) / float64(st.Items)
	}
	return st
}

// ComputeStats builds the dashboard for a state as of today.
func ComputeStats(guests []domain.Guest, items []domain.BudgetItem, weddingDate string, today time.Time) Stats {
	st := Stats{
		Guests: ComputeGuestStats(guests),
		Budget: ComputeBudgetStats(items, today),
	}
	if weddingDate != "" {
		if d, err := ParseDate(weddingDate); err == nil {
			days := int(d.Sub(truncateDay(today)).Hours() / 24)
			st.DaysToWedding = &days
		}
	}
	return st
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
