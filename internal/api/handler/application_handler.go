package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

// applicationListLimit caps every application listing.
const applicationListLimit = 1000

// ApplicationHandler serves submission, listing and decision endpoints for
// all four application kinds.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// --- Submission ---

// SubmitLawyer handles POST /lawyers/applications and the legacy
// POST /lawyer-applications.
//
// @Summary      Submit a lawyer application
// @Tags         lawyers
// @Accept       json
// @Produce      json
// @Param        body  body      lawyerApplicationRequest  true  "Application"
// @Success      201   {object}  submissionResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /lawyers/applications [post]
func (h *ApplicationHandler) SubmitLawyer(c echo.Context) error {
	var req lawyerApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.submit(c, req.toDomain(), req.Password)
}

// SubmitLawFirm handles POST /lawfirms/applications.
//
// @Summary      Submit a law firm application
// @Tags         lawfirms
// @Accept       json
// @Produce      json
// @Param        body  body      lawFirmApplicationRequest  true  "Application"
// @Success      201   {object}  submissionResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /lawfirms/applications [post]
func (h *ApplicationHandler) SubmitLawFirm(c echo.Context) error {
	var req lawFirmApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.submit(c, req.toDomain(), req.Password)
}

// SubmitFirmLawyer handles POST /firm-lawyers/applications.
//
// @Summary      Submit a firm lawyer application
// @Tags         firm-lawyers
// @Accept       json
// @Produce      json
// @Param        body  body      firmLawyerApplicationRequest  true  "Application"
// @Success      201   {object}  submissionResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /firm-lawyers/applications [post]
func (h *ApplicationHandler) SubmitFirmLawyer(c echo.Context) error {
	var req firmLawyerApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.submit(c, req.toDomain(), req.Password)
}

// SubmitFirmClient handles POST /firm-clients/applications.
//
// @Summary      Submit a firm client application
// @Tags         firm-clients
// @Accept       json
// @Produce      json
// @Param        body  body      firmClientApplicationRequest  true  "Application"
// @Success      201   {object}  submissionResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /firm-clients/applications [post]
func (h *ApplicationHandler) SubmitFirmClient(c echo.Context) error {
	var req firmClientApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.submit(c, req.toDomain(), req.Password)
}

func (h *ApplicationHandler) submit(c echo.Context, app *domain.Application, password string) error {
	stored, err := h.service.Submit(c.Request().Context(), ports.SubmitApplicationInput{
		Application: app,
		Password:    password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, submissionResponse{
		Message:       "Application submitted successfully",
		ApplicationID: stored.ID,
		Status:        stored.Status,
	})
}

// --- Listing ---

// ListLawyerApplications handles GET /admin/lawyer-applications.
//
// @Summary      List lawyer applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending, approved or rejected"
// @Success      200     {object}  applicationListResponse
// @Failure      403     {object}  errorResponse
// @Router       /admin/lawyer-applications [get]
func (h *ApplicationHandler) ListLawyerApplications(c echo.Context) error {
	return h.list(c, domain.KindLawyer, "")
}

// ListLawFirmApplications handles GET /admin/lawfirm-applications.
//
// @Summary      List law firm applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending, approved or rejected"
// @Success      200     {object}  applicationListResponse
// @Failure      403     {object}  errorResponse
// @Router       /admin/lawfirm-applications [get]
func (h *ApplicationHandler) ListLawFirmApplications(c echo.Context) error {
	return h.list(c, domain.KindLawFirm, "")
}

// ListFirmLawyerApplications handles GET /firm-lawyers/applications. A
// manager sees their own firm; the admin may pass law_firm_id.
//
// @Summary      List firm lawyer applications
// @Tags         firm-lawyers
// @Produce      json
// @Security     BearerAuth
// @Param        law_firm_id  query     string  false  "Law firm id (defaults to the caller's firm)"
// @Param        status       query     string  false  "pending, approved or rejected"
// @Success      200          {object}  applicationListResponse
// @Failure      403          {object}  errorResponse
// @Router       /firm-lawyers/applications [get]
func (h *ApplicationHandler) ListFirmLawyerApplications(c echo.Context) error {
	firmID := c.QueryParam("law_firm_id")
	if firmID == "" {
		if p, err := principal(c); err == nil && p.Role() == domain.RoleLawFirm {
			firmID = p.SubjectID()
		}
	}
	return h.list(c, domain.KindFirmLawyer, firmID)
}

// ListFirmClientApplications handles GET /firm-clients/applications/firm/:law_firm_id.
//
// @Summary      List a firm's client applications
// @Tags         firm-clients
// @Produce      json
// @Security     BearerAuth
// @Param        law_firm_id  path      string  true   "Law firm id"
// @Param        status       query     string  false  "pending, approved or rejected"
// @Success      200          {object}  applicationListResponse
// @Failure      403          {object}  errorResponse
// @Router       /firm-clients/applications/firm/{law_firm_id} [get]
func (h *ApplicationHandler) ListFirmClientApplications(c echo.Context) error {
	return h.list(c, domain.KindFirmClient, c.Param("law_firm_id"))
}

// ListAllFirmClientApplications handles GET /firm-clients/applications/all.
//
// @Summary      List every firm client application
// @Tags         firm-clients
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending, approved or rejected"
// @Success      200     {object}  applicationListResponse
// @Failure      403     {object}  errorResponse
// @Router       /firm-clients/applications/all [get]
func (h *ApplicationHandler) ListAllFirmClientApplications(c echo.Context) error {
	return h.list(c, domain.KindFirmClient, "")
}

func (h *ApplicationHandler) list(c echo.Context, kind domain.ApplicationKind, firmID string) error {
	reviewer, err := principal(c)
	if err != nil {
		return err
	}
	status := domain.ApplicationStatus(c.QueryParam("status"))
	switch status {
	case "", domain.ApplicationPending, domain.ApplicationApproved, domain.ApplicationRejected:
	default:
		return domain.NewValidationError("status", "must be one of: pending approved rejected")
	}

	res, err := h.service.List(c.Request().Context(), reviewer, ports.ApplicationFilter{
		Kind:      kind,
		LawFirmID: firmID,
		Status:    status,
		Limit:     applicationListLimit,
	})
	if err != nil {
		return err
	}
	apps := res.Applications
	if apps == nil {
		apps = []*domain.Application{}
	}
	return c.JSON(http.StatusOK, applicationListResponse{Applications: apps, Stats: res.Stats})
}

// --- Decisions ---

// ApproveLawyer handles PUT /admin/lawyer-applications/:id/approve.
//
// @Summary      Approve a lawyer application
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  decisionResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /admin/lawyer-applications/{id}/approve [put]
func (h *ApplicationHandler) ApproveLawyer(c echo.Context) error {
	return h.decide(c, ports.DecideInput{Kind: domain.KindLawyer, ID: c.Param("id"), Status: domain.ApplicationApproved})
}

// RejectLawyer handles PUT /admin/lawyer-applications/:id/reject.
//
// @Summary      Reject a lawyer application
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true   "Application id"
// @Param        body  body      rejectRequest  false  "Optional reason"
// @Success      200   {object}  decisionResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/lawyer-applications/{id}/reject [put]
func (h *ApplicationHandler) RejectLawyer(c echo.Context) error {
	return h.reject(c, domain.KindLawyer)
}

// ApproveLawFirm handles PUT /admin/lawfirm-applications/:id/approve.
//
// @Summary      Approve a law firm application
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  decisionResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /admin/lawfirm-applications/{id}/approve [put]
func (h *ApplicationHandler) ApproveLawFirm(c echo.Context) error {
	return h.decide(c, ports.DecideInput{Kind: domain.KindLawFirm, ID: c.Param("id"), Status: domain.ApplicationApproved})
}

// RejectLawFirm handles PUT /admin/lawfirm-applications/:id/reject.
//
// @Summary      Reject a law firm application
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true   "Application id"
// @Param        body  body      rejectRequest  false  "Optional reason"
// @Success      200   {object}  decisionResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/lawfirm-applications/{id}/reject [put]
func (h *ApplicationHandler) RejectLawFirm(c echo.Context) error {
	return h.reject(c, domain.KindLawFirm)
}

func (h *ApplicationHandler) reject(c echo.Context, kind domain.ApplicationKind) error {
	var req rejectRequest
	// The body is optional; an empty PUT carries no reason.
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
	}
	return h.decide(c, ports.DecideInput{
		Kind:            kind,
		ID:              c.Param("id"),
		Status:          domain.ApplicationRejected,
		RejectionReason: req.reason(),
	})
}

// DecideFirmLawyer handles PUT /firm-lawyers/applications/:id/status.
//
// @Summary      Decide a firm lawyer application
// @Tags         firm-lawyers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Application id"
// @Param        body  body      decisionStatusRequest true  "Decision"
// @Success      200   {object}  decisionResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /firm-lawyers/applications/{id}/status [put]
func (h *ApplicationHandler) DecideFirmLawyer(c echo.Context) error {
	return h.decideWithStatus(c, domain.KindFirmLawyer)
}

// DecideFirmClient handles PUT /firm-clients/applications/:id/status. An
// approval returns the client's temporary password exactly once.
//
// @Summary      Decide a firm client application
// @Tags         firm-clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Application id"
// @Param        body  body      decisionStatusRequest true  "Decision"
// @Success      200   {object}  decisionResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /firm-clients/applications/{id}/status [put]
func (h *ApplicationHandler) DecideFirmClient(c echo.Context) error {
	return h.decideWithStatus(c, domain.KindFirmClient)
}

func (h *ApplicationHandler) decideWithStatus(c echo.Context, kind domain.ApplicationKind) error {
	var req decisionStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.decide(c, ports.DecideInput{
		Kind:             kind,
		ID:               c.Param("id"),
		Status:           domain.ApplicationStatus(req.Status),
		RejectionReason:  req.RejectionReason,
		AssignedLawyerID: req.AssignedLawyerID,
	})
}

func (h *ApplicationHandler) decide(c echo.Context, in ports.DecideInput) error {
	reviewer, err := principal(c)
	if err != nil {
		return err
	}

	res, err := h.service.Decide(c.Request().Context(), reviewer, in)
	if err != nil {
		return err
	}

	resp := decisionResponse{
		Message:     "Application " + string(res.Application.Status) + " successfully",
		Application: res.Application,
	}
	if res.Identity != nil {
		resp.IdentityID = res.Identity.ID
	}
	if res.TempPassword != "" {
		resp.Message = "Application approved and client account created"
		resp.ClientID = res.Identity.ID
		resp.TempPassword = res.TempPassword
	}
	return c.JSON(http.StatusOK, resp)
}
