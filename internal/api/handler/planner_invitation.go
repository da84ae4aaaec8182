package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weddingplan/planner-api/internal/core/store"
)

// Invitation godoc
//
// @Summary      Get the invitation card
// @Tags         invitation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.InvitationData
// @Router       /v1/invitation [get]
func (h *PlannerHandler) Invitation(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Snapshot().Invitation)
}

// UpdateInvitation merges the given fields into the invitation.
//
// @Summary      Update the invitation card
// @Tags         invitation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      invitationPatchRequest  true  "Fields to change"
// @Success      200   {object}  domain.InvitationData
// @Router       /v1/invitation [patch]
func (h *PlannerHandler) UpdateInvitation(c echo.Context) error {
	var req invitationPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	st, _, err := h.dispatch(c, "update_invitation", store.UpdateInvitation(req.toPatch()))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st.Invitation)
}

// FengShuiProfile godoc
//
// @Summary      Get the feng shui profile and past results
// @Tags         fengshui
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  fengShuiResponse
// @Router       /v1/fengshui [get]
func (h *PlannerHandler) FengShuiProfile(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	st := s.Snapshot()
	return c.JSON(http.StatusOK, fengShuiResponse{Profile: st.FengShuiProfile, Results: st.FengShuiResults})
}

// SetFengShuiProfile godoc
//
// @Summary      Save the feng shui profile
// @Tags         fengshui
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      fengShuiProfileRequest  true  "Birth data"
// @Success      200   {object}  domain.FengShuiProfile
// @Failure      422   {object}  errorResponse
// @Router       /v1/fengshui/profile [put]
func (h *PlannerHandler) SetFengShuiProfile(c echo.Context) error {
	var req fengShuiProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	profile := req.toProfile()
	if _, _, err := h.dispatch(c, "set_feng_shui_profile", store.SetFengShuiProfile(profile)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
