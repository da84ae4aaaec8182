package store

import "github.com/weddingplan/planner-api/internal/core/domain"

// GuestPatch carries the guest fields to overwrite; nil fields are kept.
type GuestPatch struct {
	Name          *string
	Group         *domain.GuestGroup
	Probability   *domain.Probability
	ChildrenCount *int
	ExpectedGift  *int64
	Note          *string
}

func (p GuestPatch) apply(g *domain.Guest) {
	set(&g.Name, p.Name)
	set(&g.Group, p.Group)
	set(&g.Probability, p.Probability)
	set(&g.ChildrenCount, p.ChildrenCount)
	set(&g.ExpectedGift, p.ExpectedGift)
	set(&g.Note, p.Note)
}

// BudgetItemPatch carries the budget item fields to overwrite.
type BudgetItemPatch struct {
	Category      *string
	Name          *string
	Assignee      *string
	Side          *domain.Side
	Status        *domain.BudgetStatus
	EstimatedCost *int64
	ActualCost    *int64
	Deadline      *string
	Note          *string
}

func (p BudgetItemPatch) apply(it *domain.BudgetItem) {
	set(&it.Category, p.Category)
	set(&it.Name, p.Name)
	set(&it.Assignee, p.Assignee)
	set(&it.Side, p.Side)
	set(&it.Status, p.Status)
	set(&it.EstimatedCost, p.EstimatedCost)
	set(&it.ActualCost, p.ActualCost)
	set(&it.Deadline, p.Deadline)
	set(&it.Note, p.Note)
}

// ProcedurePatch carries the procedure step fields to overwrite.
type ProcedurePatch struct {
	Title       *string
	Description *string
	Offerings   *[]string
	Tasks       *[]domain.TaskTemplate
	Tips        *[]string
	Taboos      *[]string
	Images      *[]string
}

func (p ProcedurePatch) apply(s *domain.ProcedureStep) {
	set(&s.Title, p.Title)
	set(&s.Description, p.Description)
	set(&s.Offerings, p.Offerings)
	set(&s.Tasks, p.Tasks)
	set(&s.Tips, p.Tips)
	set(&s.Taboos, p.Taboos)
	set(&s.Images, p.Images)
}

// InvitationPatch is merged shallowly into the invitation.
type InvitationPatch struct {
	GroomName     *string
	BrideName     *string
	Date          *string
	Time          *string
	Location      *string
	Address       *string
	MapURL        *string
	BankName      *string
	AccountNumber *string
	AccountHolder *string
	Gallery       *[]string
	Theme         *string
	Message       *string
}

func (p InvitationPatch) apply(inv *domain.InvitationData) {
	set(&inv.GroomName, p.GroomName)
	set(&inv.BrideName, p.BrideName)
	set(&inv.Date, p.Date)
	set(&inv.Time, p.Time)
	set(&inv.Location, p.Location)
	set(&inv.Address, p.Address)
	set(&inv.MapURL, p.MapURL)
	set(&inv.BankName, p.BankName)
	set(&inv.AccountNumber, p.AccountNumber)
	set(&inv.AccountHolder, p.AccountHolder)
	set(&inv.Gallery, p.Gallery)
	set(&inv.Theme, p.Theme)
	set(&inv.Message, p.Message)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
