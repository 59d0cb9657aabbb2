package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

// FirmLawyerHandler serves the firm lawyer roster, their tasks and the
// firm performance report.
type FirmLawyerHandler struct {
	service ports.FirmService
}

func NewFirmLawyerHandler(service ports.FirmService) *FirmLawyerHandler {
	return &FirmLawyerHandler{service: service}
}

type createFirmLawyerRequest struct {
	FullName         string   `json:"full_name"          validate:"required"`
	Email            string   `json:"email"              validate:"required,email"`
	Password         string   `json:"password"           validate:"required,min=6"`
	Phone            string   `json:"phone"              validate:"required"`
	Specialization   string   `json:"specialization"     validate:"required"`
	ExperienceYears  int      `json:"experience_years"   validate:"gte=0"`
	BarCouncilNumber string   `json:"bar_council_number"`
	Languages        []string `json:"languages"`
}

type lawyerStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to" validate:"required"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=high medium low"`
	DueDate     string `json:"due_date"`
	CaseID      string `json:"case_id"`
	CaseName    string `json:"case_name"`
}

type taskStatusRequest struct {
	Status string `json:"status"`
}

// Create handles POST /firm-lawyers.
//
// @Summary      Create a firm lawyer
// @Tags         firm-lawyers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFirmLawyerRequest  true  "Lawyer"
// @Success      201   {object}  domain.Identity
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /firm-lawyers [post]
func (h *FirmLawyerHandler) Create(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	var req createFirmLawyerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lawyer, err := h.service.CreateFirmLawyer(c.Request().Context(), caller, ports.CreateFirmLawyerInput{
		FullName:         req.FullName,
		Email:            req.Email,
		Password:         req.Password,
		Phone:            req.Phone,
		Specialization:   req.Specialization,
		ExperienceYears:  req.ExperienceYears,
		BarCouncilNumber: req.BarCouncilNumber,
		Languages:        req.Languages,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, lawyer)
}

// ListByFirm handles GET /firm-lawyers/by-firm/:firm_id.
//
// @Summary      List a firm's lawyers
// @Tags         firm-lawyers
// @Produce      json
// @Security     BearerAuth
// @Param        firm_id  path      string  true  "Law firm id"
// @Success      200      {array}   domain.Identity
// @Failure      403      {object}  errorResponse
// @Router       /firm-lawyers/by-firm/{firm_id} [get]
func (h *FirmLawyerHandler) ListByFirm(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	lawyers, err := h.service.ListFirmLawyers(c.Request().Context(), caller, c.Param("firm_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(lawyers))
}

// Get handles GET /firm-lawyers/:id.
//
// @Summary      Get a firm lawyer
// @Tags         firm-lawyers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lawyer id"
// @Success      200  {object}  domain.Identity
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /firm-lawyers/{id} [get]
func (h *FirmLawyerHandler) Get(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	lawyer, err := h.service.GetFirmLawyer(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lawyer)
}

// SetStatus handles PUT /firm-lawyers/:id/status. is_active may come in the
// body or as a query parameter.
//
// @Summary      Activate or deactivate a firm lawyer
// @Tags         firm-lawyers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string               true   "Lawyer id"
// @Param        is_active  query     bool                 false  "New state"
// @Param        body       body      lawyerStatusRequest  false  "New state"
// @Success      200        {object}  messageResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /firm-lawyers/{id}/status [put]
func (h *FirmLawyerHandler) SetStatus(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	var req lawyerStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.IsActive == nil {
		v, err := strconv.ParseBool(c.QueryParam("is_active"))
		if err != nil {
			return domain.NewValidationError("is_active", "is required")
		}
		req.IsActive = &v
	}

	if err := h.service.SetFirmLawyerActive(c.Request().Context(), caller, c.Param("id"), *req.IsActive); err != nil {
		return err
	}
	msg := "Lawyer deactivated successfully"
	if *req.IsActive {
		msg = "Lawyer activated successfully"
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// Delete handles DELETE /firm-lawyers/:id.
//
// @Summary      Delete a firm lawyer
// @Tags         firm-lawyers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lawyer id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /firm-lawyers/{id} [delete]
func (h *FirmLawyerHandler) Delete(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteFirmLawyer(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Lawyer deleted successfully"})
}

// CreateTask handles POST /firm-lawyers/tasks.
//
// @Summary      Assign a task to a firm lawyer
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task"
// @Success      201   {object}  domain.Task
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /firm-lawyers/tasks [post]
func (h *FirmLawyerHandler) CreateTask(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.CreateTask(c.Request().Context(), caller, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		CaseID:      req.CaseID,
		CaseName:    req.CaseName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// TasksByLawyer handles GET /firm-lawyers/tasks/by-lawyer/:id.
//
// @Summary      Tasks assigned to a lawyer
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lawyer id"
// @Success      200  {array}   domain.Task
// @Failure      403  {object}  errorResponse
// @Router       /firm-lawyers/tasks/by-lawyer/{id} [get]
func (h *FirmLawyerHandler) TasksByLawyer(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	tasks, err := h.service.TasksByLawyer(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(tasks))
}

// TasksByFirm handles GET /firm-lawyers/tasks/by-firm/:firm_id.
//
// @Summary      Tasks of a firm
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        firm_id  path      string  true  "Law firm id"
// @Success      200      {array}   domain.Task
// @Failure      403      {object}  errorResponse
// @Router       /firm-lawyers/tasks/by-firm/{firm_id} [get]
func (h *FirmLawyerHandler) TasksByFirm(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	tasks, err := h.service.TasksByFirm(c.Request().Context(), caller, c.Param("firm_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(tasks))
}

// UpdateTaskStatus handles PUT /firm-lawyers/tasks/:id/status. status may
// come in the body or as a query parameter.
//
// @Summary      Update a task's status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string             true   "Task id"
// @Param        status  query     string             false  "pending, in_progress or completed"
// @Param        body    body      taskStatusRequest  false  "New status"
// @Success      200     {object}  domain.Task
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /firm-lawyers/tasks/{id}/status [put]
func (h *FirmLawyerHandler) UpdateTaskStatus(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	var req taskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Status == "" {
		req.Status = c.QueryParam("status")
	}

	task, err := h.service.UpdateTaskStatus(c.Request().Context(), caller, c.Param("id"), domain.TaskStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Report handles GET /firm-lawyers/reports/firm/:firm_id.
//
// @Summary      Firm performance report
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        firm_id  path      string  true  "Law firm id"
// @Success      200      {object}  domain.FirmReport
// @Failure      403      {object}  errorResponse
// @Router       /firm-lawyers/reports/firm/{firm_id} [get]
func (h *FirmLawyerHandler) Report(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	report, err := h.service.FirmReport(c.Request().Context(), caller, c.Param("firm_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// orEmpty renders nil slices as [] rather than null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
