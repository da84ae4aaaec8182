package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weddingplan/planner-api/internal/core/store"
)

// ListGuests godoc
//
// @Summary      List guests
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Guest
// @Router       /v1/guests [get]
func (h *PlannerHandler) ListGuests(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Snapshot().Guests)
}

// AddGuest godoc
//
// @Summary      Add a guest
// @Tags         guests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      guestRequest  true  "Guest"
// @Success      201   {object}  domain.Guest
// @Failure      422   {object}  errorResponse
// @Router       /v1/guests [post]
func (h *PlannerHandler) AddGuest(c echo.Context) error {
	var req guestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.store(c)
	if err != nil {
		return err
	}

	guest := req.toGuest(s.NewID())
	if _, _, err := h.dispatch(c, "add_guest", store.AddGuest(guest)); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, guest)
}

// UpdateGuest godoc
//
// @Summary      Update a guest
// @Tags         guests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Guest ID"
// @Param        body  body      guestPatchRequest  true  "Fields to change"
// @Success      200   {array}   domain.Guest
// @Router       /v1/guests/{id} [patch]
func (h *PlannerHandler) UpdateGuest(c echo.Context) error {
	var req guestPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	st, _, err := h.dispatch(c, "update_guest", store.UpdateGuest(c.Param("id"), req.toPatch()))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st.Guests)
}

// DeleteGuest godoc
//
// @Summary      Delete a guest
// @Tags         guests
// @Security     BearerAuth
// @Param        id   path  string  true  "Guest ID"
// @Success      204
// @Router       /v1/guests/{id} [delete]
func (h *PlannerHandler) DeleteGuest(c echo.Context) error {
	if _, _, err := h.dispatch(c, "delete_guest", store.DeleteGuest(c.Param("id"))); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
