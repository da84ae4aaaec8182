package planning

import (
	"fmt"
	"testing"

	"github.com/weddingplan/planner-api/internal/core/domain"
)

func TestDefaultProcedures_ReturnsCopies(t *testing.T) {
	a := DefaultProcedures()
	for _, r := range domain.Regions {
		if len(a[r]) == 0 {
			t.Fatalf("region %s has no seeded steps", r)
		}
	}

	a[domain.RegionNorth][0].Title = "changed"
	a[domain.RegionNorth][0].Offerings[0] = "changed"

	b := DefaultProcedures()
	if b[domain.RegionNorth][0].Title == "changed" || b[domain.RegionNorth][0].Offerings[0] == "changed" {
		t.Fatalf("seed table was mutated through a returned copy")
	}
}

func TestTasksToBudgetItems(t *testing.T) {
	step := DefaultProceduresFor(domain.RegionNorth)[1]
	n := 0
	items := TasksToBudgetItems(step, func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})

	if len(items) != len(step.Tasks) {
		t.Fatalf("expected %d items, got %d", len(step.Tasks), len(items))
	}
	for i, it := range items {
		if it.ID != fmt.Sprintf("id-%d", i+1) {
			t.Errorf("unexpected id %q", it.ID)
		}
		if it.Status != domain.BudgetPending || it.Side != domain.SideBoth {
			t.Errorf("unexpected defaults: %+v", it)
		}
		if it.Name != step.Tasks[i].Name || it.EstimatedCost != step.Tasks[i].EstimatedCost {
			t.Errorf("task %d not copied: %+v", i, it)
		}
	}
}

func TestDefaultProceduresFor_UnknownRegion(t *testing.T) {
	if steps := DefaultProceduresFor(domain.Region("WEST")); steps != nil {
		t.Fatalf("expected nil for unknown region, got %v", steps)
	}
}
