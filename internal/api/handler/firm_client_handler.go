package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

// FirmClientHandler serves firm client profiles, lawyer assignment and case
// updates.
type FirmClientHandler struct {
	service ports.FirmService
}

func NewFirmClientHandler(service ports.FirmService) *FirmClientHandler {
	return &FirmClientHandler{service: service}
}

type assignLawyerRequest struct {
	LawyerID string `json:"lawyer_id" validate:"required"`
}

type caseUpdateRequest struct {
	ClientID    string `json:"client_id"   validate:"required"`
	UpdateType  string `json:"update_type"`
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
}

type caseUpdateCreatedResponse struct {
	Message  string `json:"message"`
	UpdateID string `json:"update_id"`
}

// Get handles GET /firm-clients/:id.
//
// @Summary      Get a firm client
// @Tags         firm-clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  domain.Identity
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /firm-clients/{id} [get]
func (h *FirmClientHandler) Get(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	client, err := h.service.GetFirmClient(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// ListByFirm handles GET /firm-clients/firm/:law_firm_id/list.
//
// @Summary      List a firm's clients
// @Tags         firm-clients
// @Produce      json
// @Security     BearerAuth
// @Param        law_firm_id  path      string  true  "Law firm id"
// @Success      200          {array}   domain.Identity
// @Failure      403          {object}  errorResponse
// @Router       /firm-clients/firm/{law_firm_id}/list [get]
func (h *FirmClientHandler) ListByFirm(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	clients, err := h.service.ListFirmClients(c.Request().Context(), caller, c.Param("law_firm_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(clients))
}

// AssignLawyer handles PUT /firm-clients/:id/assign-lawyer.
//
// @Summary      Assign a firm lawyer to a client
// @Tags         firm-clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Client id"
// @Param        body  body      assignLawyerRequest  true  "Lawyer"
// @Success      200   {object}  domain.Identity
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /firm-clients/{id}/assign-lawyer [put]
func (h *FirmClientHandler) AssignLawyer(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	var req assignLawyerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	client, err := h.service.AssignLawyer(c.Request().Context(), caller, c.Param("id"), req.LawyerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// AddCaseUpdate handles POST /firm-clients/case-updates.
//
// @Summary      Post a case update for a client
// @Tags         firm-clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      caseUpdateRequest  true  "Update"
// @Success      201   {object}  caseUpdateCreatedResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /firm-clients/case-updates [post]
func (h *FirmClientHandler) AddCaseUpdate(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	var req caseUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	update, err := h.service.AddCaseUpdate(c.Request().Context(), caller, ports.AddCaseUpdateInput{
		ClientID:    req.ClientID,
		UpdateType:  req.UpdateType,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, caseUpdateCreatedResponse{Message: "Case update added successfully", UpdateID: update.ID})
}

// CaseUpdates handles GET /firm-clients/:id/case-updates.
//
// @Summary      List a client's case updates
// @Tags         firm-clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {array}   domain.CaseUpdate
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /firm-clients/{id}/case-updates [get]
func (h *FirmClientHandler) CaseUpdates(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	updates, err := h.service.CaseUpdates(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(updates))
}
