package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/weddingplan/planner-api/internal/api/metrics"
	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/planning"
	"github.com/weddingplan/planner-api/internal/core/store"
)

const maxImportSize = 5 << 20

// StoreProvider resolves the planner store of a user.
type StoreProvider interface {
	Acquire(ctx context.Context, userID string) (*store.Store, error)
}

// PlannerHandler exposes the planner state of the authenticated user. Every
// write goes through a store action.
type PlannerHandler struct {
	stores StoreProvider
	now    func() time.Time
}

func NewPlannerHandler(stores StoreProvider) *PlannerHandler {
	return &PlannerHandler{stores: stores, now: time.Now}
}

type stateResponse struct {
	User            *domain.User                             `json:"user,omitempty"`
	Guests          []domain.Guest                           `json:"guests"`
	BudgetItems     []domain.BudgetItem                      `json:"budget_items"`
	Region          domain.Region                            `json:"region"`
	Procedures      map[domain.Region][]domain.ProcedureStep `json:"procedures"`
	Invitation      domain.InvitationData                    `json:"invitation"`
	FengShuiProfile *domain.FengShuiProfile                  `json:"feng_shui_profile,omitempty"`
	FengShuiResults []domain.FengShuiResult                  `json:"feng_shui_results"`
	GuestUsage      domain.GuestUsage                        `json:"guest_usage"`
	Revision        int64                                    `json:"revision"`
	IsSyncing       bool                                     `json:"is_syncing"`
	SyncPending     bool                                     `json:"sync_pending"`
	Notifications   []domain.Notification                    `json:"notifications"`
}

func newStateResponse(st store.State, s *store.Store) stateResponse {
	return stateResponse{
		User:            st.User,
		Guests:          st.Guests,
		BudgetItems:     st.BudgetItems,
		Region:          st.Region,
		Procedures:      st.Procedures,
		Invitation:      st.Invitation,
		FengShuiProfile: st.FengShuiProfile,
		FengShuiResults: st.FengShuiResults,
		GuestUsage:      st.GuestUsage,
		Revision:        st.Revision,
		IsSyncing:       st.IsSyncing,
		SyncPending:     s.SyncPending(),
		Notifications:   s.Notifications(),
	}
}

func (h *PlannerHandler) store(c echo.Context) (*store.Store, error) {
	userID, err := ctxUserID(c)
	if err != nil {
		return nil, err
	}
	return h.stores.Acquire(c.Request().Context(), userID)
}

// dispatch applies a to the user's store and counts the mutation.
func (h *PlannerHandler) dispatch(c echo.Context, name string, a store.Action) (store.State, *store.Store, error) {
	s, err := h.store(c)
	if err != nil {
		return store.State{}, nil, err
	}
	metrics.StoreMutationsTotal.WithLabelValues(name).Inc()
	next, err := s.Dispatch(c.Request().Context(), a)
	if err != nil {
		return store.State{}, nil, err
	}
	return next, s, nil
}

// State returns the whole planner of the authenticated user.
//
// @Summary      Get planner state
// @Tags         planner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  stateResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/state [get]
func (h *PlannerHandler) State(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newStateResponse(s.Snapshot(), s))
}

// Stats returns the dashboard figures.
//
// @Summary      Dashboard statistics
// @Tags         planner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  planning.Stats
// @Router       /v1/stats [get]
func (h *PlannerHandler) Stats(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	st := s.Snapshot()
	wedding := ""
	if st.User != nil {
		wedding = st.User.WeddingDate
	}
	return c.JSON(http.StatusOK, planning.ComputeStats(st.Guests, st.BudgetItems, wedding, h.now()))
}

// Export downloads a backup of the planner.
//
// @Summary      Export planner data
// @Tags         planner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  store.ExportBundle
// @Router       /v1/export [get]
func (h *PlannerHandler) Export(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	now := h.now()
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="wedding-planner-%s.json"`, now.Format("20060102")))
	return c.JSON(http.StatusOK, store.Export(s.Snapshot(), now))
}

// Import replaces the planner data with an uploaded backup.
//
// @Summary      Import planner data
// @Tags         planner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      store.ExportBundle  true  "Backup file"
// @Success      200   {object}  stateResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/import [post]
func (h *PlannerHandler) Import(c echo.Context) error {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportSize))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	bundle, err := store.DecodeBundle(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	st, s, err := h.dispatch(c, "import", store.ImportBundle(bundle))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newStateResponse(st, s))
}

// Notifications lists pending toasts.
//
// @Summary      List notifications
// @Tags         planner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Notification
// @Router       /v1/notifications [get]
func (h *PlannerHandler) Notifications(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Notifications())
}

// DismissNotification removes a toast. Unknown IDs are accepted.
//
// @Summary      Dismiss notification
// @Tags         planner
// @Security     BearerAuth
// @Param        id   path  string  true  "Notification ID"
// @Success      204
// @Router       /v1/notifications/{id} [delete]
func (h *PlannerHandler) DismissNotification(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	s.DismissNotification(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

func parseRegion(c echo.Context) (domain.Region, error) {
	r := domain.Region(c.Param("region"))
	for _, known := range domain.Regions {
		if r == known {
			return r, nil
		}
	}
	return "", echo.NewHTTPError(http.StatusBadRequest, "unknown region")
}
