package domain

// BudgetStatus is the progress of a budget item. Any status may follow any
// other; there is no enforced state machine.
type BudgetStatus string

const (
	BudgetPending    BudgetStatus = "PENDING"
	BudgetInProgress BudgetStatus = "IN_PROGRESS"
	BudgetDone       BudgetStatus = "DONE"
	BudgetPaid       BudgetStatus = "PAID"
)

// Settled reports whether the item no longer needs a deadline.
func (s BudgetStatus) Settled() bool {
	return s == BudgetDone || s == BudgetPaid
}

// Side is the family responsible for an expense.
type Side string

const (
	SideGroom Side = "GROOM"
	SideBride Side = "BRIDE"
	SideBoth  Side = "BOTH"
)

// BudgetItem is one expense or task of the wedding budget.
type BudgetItem struct {
	ID            string       `json:"id" bson:"id"`
	Category      string       `json:"category" bson:"category"`
	Name          string       `json:"name" bson:"name"`
	Assignee      string       `json:"assignee,omitempty" bson:"assignee,omitempty"`
	Side          Side         `json:"side" bson:"side"`
	Status        BudgetStatus `json:"status" bson:"status"`
	EstimatedCost int64        `json:"estimated_cost" bson:"estimated_cost"`
	ActualCost    int64        `json:"actual_cost" bson:"actual_cost"`
	Deadline      string       `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Note          string       `json:"note,omitempty" bson:"note,omitempty"`
}
