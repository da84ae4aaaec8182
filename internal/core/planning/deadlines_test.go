package planning

import (
	"errors"
	"reflect"
	"testing"

	"github.com/weddingplan/planner-api/internal/core/domain"
)

func TestLeadDays_Rules(t *testing.T) {
	cases := []struct {
		category, name string
		want           int
	}{
		{"Trang Phục & Làm Đẹp", "", 45},
		{"Nhà Hàng & Tiệc", "Đặt nhà hàng", 90},
		{"Khác", "Chụp ảnh pre-wedding", 60},
		{"Lễ Vật", "Đặt tráp ăn hỏi", 14},
		{"Hoa & Trang Trí", "Hoa cưới cầm tay", 10},
		{"Khác", "Quà cảm ơn", DefaultLeadDays},
	}
	for _, tc := range cases {
		if got := LeadDays(tc.category, tc.name); got != tc.want {
			t.Errorf("LeadDays(%q, %q) = %d, want %d", tc.category, tc.name, got, tc.want)
		}
	}
}

func TestLeadDays_DecomposedInput(t *testing.T) {
	// "Trang Phục" and "Váy" typed as base letters plus combining marks.
	if got := LeadDays("Trang Phu\u0323c", ""); got != 45 {
		t.Fatalf("decomposed category: expected 45, got %d", got)
	}
	if got := LeadDays("Khác", "Va\u0301y cưới"); got != 45 {
		t.Fatalf("decomposed name: expected 45, got %d", got)
	}
}

func TestRecalculateDeadlines_Example(t *testing.T) {
	items := []domain.BudgetItem{
		{ID: "1", Category: "Trang Phục & Làm Đẹp", Name: "Váy cưới", Status: domain.BudgetPending},
	}

	got, err := RecalculateDeadlines(items, "2025-12-20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Deadline != "2025-11-05" {
		t.Fatalf("expected 2025-11-05, got %s", got[0].Deadline)
	}
	if items[0].Deadline != "" {
		t.Fatalf("input slice must not be modified")
	}
}

func TestRecalculateDeadlines_SkipsSettledItems(t *testing.T) {
	items := []domain.BudgetItem{
		{ID: "done", Category: "Lễ Vật", Status: domain.BudgetDone, Deadline: "2025-01-01"},
		{ID: "paid", Category: "Lễ Vật", Status: domain.BudgetPaid},
		{ID: "open", Category: "Khác", Status: domain.BudgetInProgress},
	}

	got, err := RecalculateDeadlines(items, "2025-12-20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Deadline != "2025-01-01" || got[1].Deadline != "" {
		t.Fatalf("settled items must keep their deadline: %+v", got[:2])
	}
	if got[2].Deadline != "2025-12-13" {
		t.Fatalf("expected default 7 days, got %s", got[2].Deadline)
	}
}

func TestRecalculateDeadlines_Deterministic(t *testing.T) {
	items := []domain.BudgetItem{
		{ID: "1", Category: "Nhà Hàng & Tiệc", Name: "Đặt tiệc"},
		{ID: "2", Category: "Khác", Name: "Thiệp cưới"},
		{ID: "3", Category: "Di Chuyển", Name: "Thuê xe hoa"},
	}

	first, err := RecalculateDeadlines(items, "2026-05-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := RecalculateDeadlines(first, "2026-05-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recalculation is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestRecalculateDeadlines_InvalidDate(t *testing.T) {
	_, err := RecalculateDeadlines(nil, "20/12/2025")
	if !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
