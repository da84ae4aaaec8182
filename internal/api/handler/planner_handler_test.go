package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/weddingplan/planner-api/internal/api/middleware"
	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/store"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(context.Context) ([]*domain.User, error) { return nil, nil }
func (r *stubUserRepo) Update(context.Context, *domain.User) error   { return nil }
func (r *stubUserRepo) Delete(context.Context, string) error         { return nil }

type plannerFixture struct {
	e       *echo.Echo
	handler *PlannerHandler
	reg     *store.Registry
}

func newPlannerFixture(t *testing.T, users ...*domain.User) *plannerFixture {
	t.Helper()
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	reg := store.NewRegistry(repo, nil, store.Options{
		NotificationDuration: time.Minute,
		Logger:               zerolog.Nop(),
	})
	t.Cleanup(reg.CloseAll)

	h := NewPlannerHandler(reg)
	h.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return &plannerFixture{e: newEcho(), handler: h, reg: reg}
}

func plannerUser(id string) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleUser, DisplayName: id}
}

// call runs fn as userID with optional name/value path params.
func (f *plannerFixture) call(t *testing.T, userID, method, target, body string, fn echo.HandlerFunc, params ...string) (*httpResult, error) {
	t.Helper()
	c, rec := jsonContext(f.e, method, target, body)
	c.Set(middleware.CtxUserID, userID)
	if len(params) > 0 {
		names := make([]string, 0, len(params)/2)
		values := make([]string, 0, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	err := fn(c)
	return &httpResult{code: rec.Code, body: rec.Body.Bytes(), header: rec.Header()}, err
}

type httpResult struct {
	code   int
	body   []byte
	header http.Header
}

func (r *httpResult) decode(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.body, v); err != nil {
		t.Fatalf("invalid json %q: %v", r.body, err)
	}
}

func TestPlannerHandler_GuestLifecycle(t *testing.T) {
	f := newPlannerFixture(t, plannerUser("u1"))
	h := f.handler

	res, err := f.call(t, "u1", http.MethodPost, "/v1/guests",
		`{"name":"Aunt Lan","group":"FAMILY","probability":80,"children_count":2,"expected_gift":500000}`, h.AddGuest)
	if err != nil {
		t.Fatalf("add guest: %v", err)
	}
	if res.code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.code)
	}
	var guest domain.Guest
	res.decode(t, &guest)
	if guest.ID == "" || guest.Name != "Aunt Lan" || guest.Probability != domain.ProbabilityLikely {
		t.Fatalf("unexpected guest: %+v", guest)
	}

	res, err = f.call(t, "u1", http.MethodPatch, "/v1/guests/"+guest.ID, `{"note":"vegetarian"}`,
		h.UpdateGuest, "id", guest.ID)
	if err != nil {
		t.Fatalf("update guest: %v", err)
	}
	var guests []domain.Guest
	res.decode(t, &guests)
	if len(guests) != 1 || guests[0].Note != "vegetarian" || guests[0].Name != "Aunt Lan" {
		t.Fatalf("patch not merged: %+v", guests)
	}

	if _, err := f.call(t, "u1", http.MethodDelete, "/v1/guests/"+guest.ID, "", h.DeleteGuest, "id", guest.ID); err != nil {
		t.Fatalf("delete guest: %v", err)
	}
	res, err = f.call(t, "u1", http.MethodGet, "/v1/guests", "", h.ListGuests)
	if err != nil {
		t.Fatalf("list guests: %v", err)
	}
	res.decode(t, &guests)
	if len(guests) != 0 {
		t.Fatalf("expected empty list, got %+v", guests)
	}
}

func TestPlannerHandler_AddGuest_Validation(t *testing.T) {
	f := newPlannerFixture(t, plannerUser("u1"))

	_, err := f.call(t, "u1", http.MethodPost, "/v1/guests", `{"group":"FAMILY"}`, f.handler.AddGuest)
	expectHTTPError(t, err, http.StatusUnprocessableEntity)

	_, err = f.call(t, "u1", http.MethodPost, "/v1/guests", `{"name":"X","group":"NEIGHBOUR"}`, f.handler.AddGuest)
	expectHTTPError(t, err, http.StatusUnprocessableEntity)
}

func TestPlannerHandler_UnknownUser(t *testing.T) {
	f := newPlannerFixture(t)

	_, err := f.call(t, "ghost", http.MethodGet, "/v1/state", "", f.handler.State)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPlannerHandler_UsersAreIsolated(t *testing.T) {
	f := newPlannerFixture(t, plannerUser("u1"), plannerUser("u2"))

	if _, err := f.call(t, "u1", http.MethodPost, "/v1/guests", `{"name":"A","group":"FRIEND","probability":100}`, f.handler.AddGuest); err != nil {
		t.Fatalf("add guest: %v", err)
	}

	res, err := f.call(t, "u2", http.MethodGet, "/v1/guests", "", f.handler.ListGuests)
	if err != nil {
		t.Fatalf("list guests: %v", err)
	}
	var guests []domain.Guest
	res.decode(t, &guests)
	if len(guests) != 0 {
		t.Fatalf("u2 sees u1's guests: %+v", guests)
	}
}

func TestPlannerHandler_ImportFromProcedure(t *testing.T) {
	f := newPlannerFixture(t, plannerUser("u1"))
	h := f.handler

	res, err := f.call(t, "u1", http.MethodPost, "/v1/budget-items/import-procedure",
		`{"region":"NORTH","step_id":"north-an-hoi"}`, h.ImportFromProcedure)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	var items []domain.BudgetItem
	res.decode(t, &items)
	if res.code != http.StatusCreated || len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", res.code, items)
	}
	for _, it := range items {
		if it.Status != domain.BudgetPending || it.Side != domain.SideBoth || it.ID == "" {
			t.Fatalf("unexpected imported item: %+v", it)
		}
	}

	_, err = f.call(t, "u1", http.MethodPost, "/v1/budget-items/import-procedure",
		`{"region":"NORTH","step_id":"missing"}`, h.ImportFromProcedure)
	if !errors.Is(err, domain.ErrProcedureNotFound) {
		t.Fatalf("expected ErrProcedureNotFound, got %v", err)
	}
}

func TestPlannerHandler_RecalculateDeadlines(t *testing.T) {
	f := newPlannerFixture(t, plannerUser("u1"))
	h := f.handler

	if _, err := f.call(t, "u1", http.MethodPost, "/v1/budget-items",
		`{"category":"Venue","name":"Book the restaurant","estimated_cost":100}`, h.AddBudgetItem); err != nil {
		t.Fatalf("add item: %v", err)
	}

	_, err := f.call(t, "u1", http.MethodPost, "/v1/budget-items/recalculate-deadlines", "", h.RecalculateDeadlines)
	expectHTTPError(t, err, http.StatusUnprocessableEntity)

	_, err = f.call(t, "u1", http.MethodPost, "/v1/budget-items/recalculate-deadlines",
		`{"wedding_date":"next spring"}`, h.RecalculateDeadlines)
	if !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	s, _ := f.reg.Lookup("u1")
	var sawError bool
	for _, n := range s.Notifications() {
		if n.Kind == domain.NotifyError {
			sawError = true
		}
	}
	if !sawError {
		t.Fatalf("expected an error notification")
	}

	res, err := f.call(t, "u1", http.MethodPost, "/v1/budget-items/recalculate-deadlines",
		`{"wedding_date":"2026-12-20"}`, h.RecalculateDeadlines)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	var items []domain.BudgetItem
	res.decode(t, &items)
	if len(items) != 1 || items[0].Deadline == "" {
		t.Fatalf("expected a deadline, got %+v", items)
	}
}

func TestPlannerHandler_Procedures(t *testing.T) {
	f := newPlannerFixture(t, plannerUser("u1"))
	h := f.handler

	res, err := f.call(t, "u1", http.MethodGet, "/v1/procedures", "", h.ListProcedures)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var list proceduresResponse
	res.decode(t, &list)
	if list.Region != domain.RegionNorth || len(list.Steps) == 0 {
		t.Fatalf("unexpected default guide: %+v", list)
	}
	seeded := len(list.Steps)

	res, err = f.call(t, "u1", http.MethodPost, "/v1/procedures/NORTH",
		`{"title":"Family dinner","tasks":[{"category":"Food","name":"Book table","estimated_cost":200}]}`,
		h.AddProcedureStep, "region", "NORTH")
	if err != nil || res.code != http.StatusCreated {
		t.Fatalf("add step: %d %v", res.code, err)
	}

	res, err = f.call(t, "u1", http.MethodPost, "/v1/procedures/NORTH/reset", "", h.ResetProcedures, "region", "NORTH")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	res.decode(t, &list)
	if len(list.Steps) != seeded {
		t.Fatalf("expected %d steps after reset, got %d", seeded, len(list.Steps))
	}

	_, err = f.call(t, "u1", http.MethodPost, "/v1/procedures/EAST/reset", "", h.ResetProcedures, "region", "EAST")
	expectHTTPError(t, err, http.StatusBadRequest)
}

func TestPlannerHandler_ExportImport(t *testing.T) {
	f := newPlannerFixture(t, plannerUser("u1"), plannerUser("u2"))
	h := f.handler

	if _, err := f.call(t, "u1", http.MethodPost, "/v1/guests", `{"name":"A","group":"FRIEND","probability":50}`, h.AddGuest); err != nil {
		t.Fatalf("add guest: %v", err)
	}

	res, err := f.call(t, "u1", http.MethodGet, "/v1/export", "", h.Export)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if cd := res.header.Get(echo.HeaderContentDisposition); !strings.Contains(cd, "wedding-planner-20260301.json") {
		t.Fatalf("unexpected content disposition %q", cd)
	}

	res, err = f.call(t, "u2", http.MethodPost, "/v1/import", string(res.body), h.Import)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	var st stateResponse
	res.decode(t, &st)
	if len(st.Guests) != 1 || st.Guests[0].Name != "A" {
		t.Fatalf("import did not replace guests: %+v", st.Guests)
	}

	_, err = f.call(t, "u2", http.MethodPost, "/v1/import", `{"version":"99"}`, h.Import)
	expectHTTPError(t, err, http.StatusBadRequest)
}

func TestPlannerHandler_Notifications(t *testing.T) {
	f := newPlannerFixture(t, plannerUser("u1"))
	h := f.handler

	if _, err := f.call(t, "u1", http.MethodPut, "/v1/fengshui/profile",
		`{"groom_name":"Minh","groom_birth_date":"1994-02-11","bride_name":"Lan","bride_birth_date":"1996-08-30"}`,
		h.SetFengShuiProfile); err != nil {
		t.Fatalf("set profile: %v", err)
	}

	res, err := f.call(t, "u1", http.MethodGet, "/v1/notifications", "", h.Notifications)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	var list []domain.Notification
	res.decode(t, &list)
	if len(list) == 0 {
		t.Fatalf("expected a notification after a write")
	}

	if _, err := f.call(t, "u1", http.MethodDelete, "/", "", h.DismissNotification, "id", list[0].ID); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	s, _ := f.reg.Lookup("u1")
	if got := len(s.Notifications()); got != len(list)-1 {
		t.Fatalf("expected %d notifications, got %d", len(list)-1, got)
	}
}

func TestPlannerHandler_UpdateInvitation(t *testing.T) {
	f := newPlannerFixture(t, plannerUser("u1"))

	res, err := f.call(t, "u1", http.MethodPatch, "/v1/invitation",
		`{"groom_name":"Minh","date":"2026-12-20"}`, f.handler.UpdateInvitation)
	if err != nil {
		t.Fatalf("update invitation: %v", err)
	}
	var inv domain.InvitationData
	res.decode(t, &inv)
	if inv.GroomName != "Minh" || inv.Date != "2026-12-20" || inv.Theme != domain.DefaultTheme {
		t.Fatalf("unexpected invitation: %+v", inv)
	}

	_, err = f.call(t, "u1", http.MethodPatch, "/v1/invitation", `{"date":"20/12/2026"}`, f.handler.UpdateInvitation)
	expectHTTPError(t, err, http.StatusUnprocessableEntity)
}
