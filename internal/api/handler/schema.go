package handler

import (
	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/store"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=6"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type guestSignInRequest struct {
	DisplayName string `json:"display_name"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Guests ---

type guestRequest struct {
	Name          string             `json:"name"           validate:"required"`
	Group         domain.GuestGroup  `json:"group"          validate:"required,oneof=FAMILY FRIEND COLLEAGUE OTHER"`
	Probability   domain.Probability `json:"probability"    validate:"oneof=100 80 50 0"`
	ChildrenCount int                `json:"children_count"`
	ExpectedGift  int64              `json:"expected_gift"`
	Note          string             `json:"note"`
}

type guestPatchRequest struct {
	Name          *string             `json:"name"           validate:"omitempty,min=1"`
	Group         *domain.GuestGroup  `json:"group"          validate:"omitempty,oneof=FAMILY FRIEND COLLEAGUE OTHER"`
	Probability   *domain.Probability `json:"probability"    validate:"omitempty,oneof=100 80 50 0"`
	ChildrenCount *int                `json:"children_count"`
	ExpectedGift  *int64              `json:"expected_gift"`
	Note          *string             `json:"note"`
}

func (r guestRequest) toGuest(id string) domain.Guest {
	return domain.Guest{
		ID:            id,
		Name:          r.Name,
		Group:         r.Group,
		Probability:   r.Probability,
		ChildrenCount: r.ChildrenCount,
		ExpectedGift:  r.ExpectedGift,
		Note:          r.Note,
	}
}

func (r guestPatchRequest) toPatch() store.GuestPatch {
	return store.GuestPatch{
		Name:          r.Name,
		Group:         r.Group,
		Probability:   r.Probability,
		ChildrenCount: r.ChildrenCount,
		ExpectedGift:  r.ExpectedGift,
		Note:          r.Note,
	}
}

// --- Budget ---

type budgetItemRequest struct {
	Category      string              `json:"category"       validate:"required"`
	Name          string              `json:"name"           validate:"required"`
	Assignee      string              `json:"assignee"`
	Side          domain.Side         `json:"side"           validate:"omitempty,oneof=GROOM BRIDE BOTH"`
	Status        domain.BudgetStatus `json:"status"         validate:"omitempty,oneof=PENDING IN_PROGRESS DONE PAID"`
	EstimatedCost int64               `json:"estimated_cost"`
	ActualCost    int64               `json:"actual_cost"`
	Deadline      string              `json:"deadline"       validate:"omitempty,datetime=2006-01-02"`
	Note          string              `json:"note"`
}

type budgetItemPatchRequest struct {
	Category      *string              `json:"category"       validate:"omitempty,min=1"`
	Name          *string              `json:"name"           validate:"omitempty,min=1"`
	Assignee      *string              `json:"assignee"`
	Side          *domain.Side         `json:"side"           validate:"omitempty,oneof=GROOM BRIDE BOTH"`
	Status        *domain.BudgetStatus `json:"status"         validate:"omitempty,oneof=PENDING IN_PROGRESS DONE PAID"`
	EstimatedCost *int64               `json:"estimated_cost"`
	ActualCost    *int64               `json:"actual_cost"`
	Deadline      *string              `json:"deadline"       validate:"omitempty,datetime=2006-01-02"`
	Note          *string              `json:"note"`
}

type importProcedureRequest struct {
	Region domain.Region `json:"region"  validate:"required,oneof=NORTH CENTRAL SOUTH"`
	StepID string        `json:"step_id" validate:"required"`
}

type recalculateRequest struct {
	WeddingDate string `json:"wedding_date"`
}

func (r budgetItemRequest) toItem(id string) domain.BudgetItem {
	it := domain.BudgetItem{
		ID:            id,
		Category:      r.Category,
		Name:          r.Name,
		Assignee:      r.Assignee,
		Side:          r.Side,
		Status:        r.Status,
		EstimatedCost: r.EstimatedCost,
		ActualCost:    r.ActualCost,
		Deadline:      r.Deadline,
		Note:          r.Note,
	}
	if it.Side == "" {
		it.Side = domain.SideBoth
	}
	if it.Status == "" {
		it.Status = domain.BudgetPending
	}
	return it
}

func (r budgetItemPatchRequest) toPatch() store.BudgetItemPatch {
	return store.BudgetItemPatch{
		Category:      r.Category,
		Name:          r.Name,
		Assignee:      r.Assignee,
		Side:          r.Side,
		Status:        r.Status,
		EstimatedCost: r.EstimatedCost,
		ActualCost:    r.ActualCost,
		Deadline:      r.Deadline,
		Note:          r.Note,
	}
}

// --- Procedures ---

type regionRequest struct {
	Region domain.Region `json:"region" validate:"required,oneof=NORTH CENTRAL SOUTH"`
}

type taskRequest struct {
	Category      string `json:"category"       validate:"required"`
	Name          string `json:"name"           validate:"required"`
	EstimatedCost int64  `json:"estimated_cost"`
}

type procedureStepRequest struct {
	Title       string        `json:"title"       validate:"required"`
	Description string        `json:"description"`
	Offerings   []string      `json:"offerings"`
	Tasks       []taskRequest `json:"tasks"       validate:"dive"`
	Tips        []string      `json:"tips"`
	Taboos      []string      `json:"taboos"`
	Images      []string      `json:"images"`
}

type procedureStepPatchRequest struct {
	Title       *string        `json:"title"       validate:"omitempty,min=1"`
	Description *string        `json:"description"`
	Offerings   *[]string      `json:"offerings"`
	Tasks       *[]taskRequest `json:"tasks"`
	Tips        *[]string      `json:"tips"`
	Taboos      *[]string      `json:"taboos"`
	Images      *[]string      `json:"images"`
}

func toTasks(in []taskRequest) []domain.TaskTemplate {
	out := make([]domain.TaskTemplate, 0, len(in))
	for _, t := range in {
		out = append(out, domain.TaskTemplate{Category: t.Category, Name: t.Name, EstimatedCost: t.EstimatedCost})
	}
	return out
}

func (r procedureStepRequest) toStep(id string) domain.ProcedureStep {
	return domain.ProcedureStep{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Offerings:   r.Offerings,
		Tasks:       toTasks(r.Tasks),
		Tips:        r.Tips,
		Taboos:      r.Taboos,
		Images:      r.Images,
	}
}

func (r procedureStepPatchRequest) toPatch() store.ProcedurePatch {
	p := store.ProcedurePatch{
		Title:       r.Title,
		Description: r.Description,
		Offerings:   r.Offerings,
		Tips:        r.Tips,
		Taboos:      r.Taboos,
		Images:      r.Images,
	}
	if r.Tasks != nil {
		tasks := toTasks(*r.Tasks)
		p.Tasks = &tasks
	}
	return p
}

// --- Invitation & feng shui ---

type invitationPatchRequest struct {
	GroomName     *string   `json:"groom_name"`
	BrideName     *string   `json:"bride_name"`
	Date          *string   `json:"date"           validate:"omitempty,datetime=2006-01-02"`
	Time          *string   `json:"time"`
	Location      *string   `json:"location"`
	Address       *string   `json:"address"`
	MapURL        *string   `json:"map_url"        validate:"omitempty,url"`
	BankName      *string   `json:"bank_name"`
	AccountNumber *string   `json:"account_number"`
	AccountHolder *string   `json:"account_holder"`
	Gallery       *[]string `json:"gallery"`
	Theme         *string   `json:"theme"`
	Message       *string   `json:"message"`
}

func (r invitationPatchRequest) toPatch() store.InvitationPatch {
	return store.InvitationPatch{
		GroomName:     r.GroomName,
		BrideName:     r.BrideName,
		Date:          r.Date,
		Time:          r.Time,
		Location:      r.Location,
		Address:       r.Address,
		MapURL:        r.MapURL,
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		AccountHolder: r.AccountHolder,
		Gallery:       r.Gallery,
		Theme:         r.Theme,
		Message:       r.Message,
	}
}

type fengShuiProfileRequest struct {
	GroomName      string `json:"groom_name"       validate:"required"`
	GroomBirthDate string `json:"groom_birth_date" validate:"required,datetime=2006-01-02"`
	BrideName      string `json:"bride_name"       validate:"required"`
	BrideBirthDate string `json:"bride_birth_date" validate:"required,datetime=2006-01-02"`
}

func (r fengShuiProfileRequest) toProfile() domain.FengShuiProfile {
	return domain.FengShuiProfile{
		GroomName:      r.GroomName,
		GroomBirthDate: r.GroomBirthDate,
		BrideName:      r.BrideName,
		BrideBirthDate: r.BrideBirthDate,
	}
}

// --- Advisor ---

type chatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

type speechRequest struct {
	Speaker string `json:"speaker" validate:"required"`
	Tone    string `json:"tone"`
	Notes   string `json:"notes"   validate:"max=2000"`
}

type completionResponse struct {
	Text string `json:"text"`
}

// --- Accounts ---

type profileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=1"`
	WeddingDate *string `json:"wedding_date"`
}

type permissionsRequest struct {
	AllowCustomAPIKey bool `json:"allow_custom_api_key"`
	CloudStorage      bool `json:"cloud_storage"`
}

type userUpdateRequest struct {
	Role        *domain.Role        `json:"role"        validate:"omitempty,oneof=ADMIN USER GUEST"`
	Activated   *bool               `json:"activated"`
	Permissions *permissionsRequest `json:"permissions"`
}

type fengShuiResponse struct {
	Profile *domain.FengShuiProfile `json:"profile,omitempty"`
	Results []domain.FengShuiResult `json:"results"`
}
