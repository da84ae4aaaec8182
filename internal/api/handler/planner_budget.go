package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/planning"
	"github.com/weddingplan/planner-api/internal/core/store"
)

// ListBudgetItems godoc
//
// @Summary      List budget items
// @Tags         budget
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.BudgetItem
// @Router       /v1/budget-items [get]
func (h *PlannerHandler) ListBudgetItems(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Snapshot().BudgetItems)
}

// AddBudgetItem godoc
//
// @Summary      Add a budget item
// @Tags         budget
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      budgetItemRequest  true  "Budget item"
// @Success      201   {object}  domain.BudgetItem
// @Failure      422   {object}  errorResponse
// @Router       /v1/budget-items [post]
func (h *PlannerHandler) AddBudgetItem(c echo.Context) error {
	var req budgetItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.store(c)
	if err != nil {
		return err
	}

	item := req.toItem(s.NewID())
	if _, _, err := h.dispatch(c, "add_budget_item", store.AddBudgetItem(item)); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateBudgetItem godoc
//
// @Summary      Update a budget item
// @Tags         budget
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Budget item ID"
// @Param        body  body      budgetItemPatchRequest  true  "Fields to change"
// @Success      200   {array}   domain.BudgetItem
// @Router       /v1/budget-items/{id} [patch]
func (h *PlannerHandler) UpdateBudgetItem(c echo.Context) error {
	var req budgetItemPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	st, _, err := h.dispatch(c, "update_budget_item", store.UpdateBudgetItem(c.Param("id"), req.toPatch()))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st.BudgetItems)
}

// DeleteBudgetItem godoc
//
// @Summary      Delete a budget item
// @Tags         budget
// @Security     BearerAuth
// @Param        id   path  string  true  "Budget item ID"
// @Success      204
// @Router       /v1/budget-items/{id} [delete]
func (h *PlannerHandler) DeleteBudgetItem(c echo.Context) error {
	if _, _, err := h.dispatch(c, "delete_budget_item", store.DeleteBudgetItem(c.Param("id"))); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ImportFromProcedure turns the tasks of a ceremony step into budget items.
//
// @Summary      Import budget items from a procedure step
// @Tags         budget
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      importProcedureRequest  true  "Step reference"
// @Success      201   {array}   domain.BudgetItem
// @Failure      404   {object}  errorResponse
// @Router       /v1/budget-items/import-procedure [post]
func (h *PlannerHandler) ImportFromProcedure(c echo.Context) error {
	var req importProcedureRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.store(c)
	if err != nil {
		return err
	}

	var step *domain.ProcedureStep
	for _, st := range s.Snapshot().Procedures[req.Region] {
		if st.ID == req.StepID {
			st := st
			step = &st
			break
		}
	}
	if step == nil {
		return domain.ErrProcedureNotFound
	}

	items := planning.TasksToBudgetItems(*step, s.NewID)
	if _, _, err := h.dispatch(c, "import_procedure", store.AddBudgetItems(items)); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, items)
}

// RecalculateDeadlines reassigns deadlines from the wedding date. Without a
// date in the body the profile's wedding date is used.
//
// @Summary      Recalculate budget deadlines
// @Tags         budget
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recalculateRequest  false  "Wedding date (YYYY-MM-DD)"
// @Success      200   {array}   domain.BudgetItem
// @Failure      422   {object}  errorResponse
// @Router       /v1/budget-items/recalculate-deadlines [post]
func (h *PlannerHandler) RecalculateDeadlines(c echo.Context) error {
	var req recalculateRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
	}
	s, err := h.store(c)
	if err != nil {
		return err
	}

	date := req.WeddingDate
	if date == "" {
		if u := s.Snapshot().User; u != nil {
			date = u.WeddingDate
		}
	}
	if date == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "wedding_date is required")
	}

	st, _, err := h.dispatch(c, "recalculate_deadlines", store.RecalculateDeadlines(date))
	if err != nil {
		return err
	}
	if _, err := planning.ParseDate(date); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st.BudgetItems)
}
