package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/store"
)

type proceduresResponse struct {
	Region domain.Region          `json:"region"`
	Steps  []domain.ProcedureStep `json:"steps"`
}

// ListProcedures returns the ceremony guide of a region, the active one by
// default.
//
// @Summary      List procedure steps
// @Tags         procedures
// @Produce      json
// @Security     BearerAuth
// @Param        region  query     string  false  "NORTH, CENTRAL or SOUTH"
// @Success      200     {object}  proceduresResponse
// @Router       /v1/procedures [get]
func (h *PlannerHandler) ListProcedures(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	st := s.Snapshot()
	region := st.Region
	if q := c.QueryParam("region"); q != "" {
		region = domain.Region(q)
	}
	steps := st.Procedures[region]
	if steps == nil {
		steps = []domain.ProcedureStep{}
	}
	return c.JSON(http.StatusOK, proceduresResponse{Region: region, Steps: steps})
}

// SetRegion switches the active ceremony guide.
//
// @Summary      Select region
// @Tags         procedures
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  regionRequest  true  "Region"
// @Success      204
// @Router       /v1/procedures/region [put]
func (h *PlannerHandler) SetRegion(c echo.Context) error {
	var req regionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if _, _, err := h.dispatch(c, "set_region", store.SetRegion(req.Region)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddProcedureStep godoc
//
// @Summary      Add a procedure step
// @Tags         procedures
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        region  path      string                true  "Region"
// @Param        body    body      procedureStepRequest  true  "Step"
// @Success      201     {object}  domain.ProcedureStep
// @Router       /v1/procedures/{region} [post]
func (h *PlannerHandler) AddProcedureStep(c echo.Context) error {
	region, err := parseRegion(c)
	if err != nil {
		return err
	}
	var req procedureStepRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.store(c)
	if err != nil {
		return err
	}

	step := req.toStep(s.NewID())
	if _, _, err := h.dispatch(c, "add_procedure_step", store.AddProcedureStep(region, step)); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, step)
}

// UpdateProcedureStep godoc
//
// @Summary      Update a procedure step
// @Tags         procedures
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        region  path      string                     true  "Region"
// @Param        id      path      string                     true  "Step ID"
// @Param        body    body      procedureStepPatchRequest  true  "Fields to change"
// @Success      200     {object}  proceduresResponse
// @Router       /v1/procedures/{region}/{id} [patch]
func (h *PlannerHandler) UpdateProcedureStep(c echo.Context) error {
	region, err := parseRegion(c)
	if err != nil {
		return err
	}
	var req procedureStepPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	st, _, err := h.dispatch(c, "update_procedure_step", store.UpdateProcedureStep(region, c.Param("id"), req.toPatch()))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, proceduresResponse{Region: region, Steps: st.Procedures[region]})
}

// DeleteProcedureStep godoc
//
// @Summary      Delete a procedure step
// @Tags         procedures
// @Security     BearerAuth
// @Param        region  path  string  true  "Region"
// @Param        id      path  string  true  "Step ID"
// @Success      204
// @Router       /v1/procedures/{region}/{id} [delete]
func (h *PlannerHandler) DeleteProcedureStep(c echo.Context) error {
	region, err := parseRegion(c)
	if err != nil {
		return err
	}
	if _, _, err := h.dispatch(c, "delete_procedure_step", store.DeleteProcedureStep(region, c.Param("id"))); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ResetProcedures restores the built-in guide of a region.
//
// @Summary      Reset a region's guide
// @Tags         procedures
// @Produce      json
// @Security     BearerAuth
// @Param        region  path      string  true  "Region"
// @Success      200     {object}  proceduresResponse
// @Router       /v1/procedures/{region}/reset [post]
func (h *PlannerHandler) ResetProcedures(c echo.Context) error {
	region, err := parseRegion(c)
	if err != nil {
		return err
	}
	st, _, err := h.dispatch(c, "reset_procedures", store.ResetProcedures(region))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, proceduresResponse{Region: region, Steps: st.Procedures[region]})
}
