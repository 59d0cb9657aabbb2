package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

// ResourceHandler serves records owned by the authenticated account: cases,
// documents and bookings.
type ResourceHandler struct {
	service ports.ResourceService
}

func NewResourceHandler(service ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

type createCaseRequest struct {
	Title       string `json:"title"       validate:"required"`
	CaseNumber  string `json:"case_number"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type createDocumentRequest struct {
	CaseID   string `json:"case_id"   validate:"required"`
	Title    string `json:"title"     validate:"required"`
	FileURL  string `json:"file_url"  validate:"required"`
	FileType string `json:"file_type"`
}

type createBookingRequest struct {
	LawyerID    string `json:"lawyer_id"   validate:"required"`
	Date        string `json:"date"        validate:"required"`
	Time        string `json:"time"        validate:"required"`
	Description string `json:"description"`
}

type bookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// CreateCase handles POST /cases.
//
// @Summary      Create a case
// @Tags         cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCaseRequest  true  "Case"
// @Success      201   {object}  domain.Case
// @Failure      422   {object}  errorResponse
// @Router       /cases [post]
func (h *ResourceHandler) CreateCase(c echo.Context) error {
	owner, err := identity(c)
	if err != nil {
		return err
	}
	var req createCaseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.service.CreateCase(c.Request().Context(), owner, ports.CreateCaseInput{
		Title:       req.Title,
		CaseNumber:  req.CaseNumber,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// ListCases handles GET /cases.
//
// @Summary      List my cases
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Case
// @Router       /cases [get]
func (h *ResourceHandler) ListCases(c echo.Context) error {
	owner, err := identity(c)
	if err != nil {
		return err
	}
	cases, err := h.service.ListCases(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(cases))
}

// GetCase handles GET /cases/:id.
//
// @Summary      Get one of my cases
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Case id"
// @Success      200  {object}  domain.Case
// @Failure      404  {object}  errorResponse
// @Router       /cases/{id} [get]
func (h *ResourceHandler) GetCase(c echo.Context) error {
	owner, err := identity(c)
	if err != nil {
		return err
	}
	found, err := h.service.GetCase(c.Request().Context(), owner, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, found)
}

// CreateDocument handles POST /documents.
//
// @Summary      Attach a document to a case
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDocumentRequest  true  "Document metadata"
// @Success      201   {object}  domain.Document
// @Failure      404   {object}  errorResponse
// @Router       /documents [post]
func (h *ResourceHandler) CreateDocument(c echo.Context) error {
	owner, err := identity(c)
	if err != nil {
		return err
	}
	var req createDocumentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.service.CreateDocument(c.Request().Context(), owner, ports.CreateDocumentInput{
		CaseID:   req.CaseID,
		Title:    req.Title,
		FileURL:  req.FileURL,
		FileType: req.FileType,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

// ListDocuments handles GET /documents.
//
// @Summary      List my documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        case_id  query     string  false  "Only documents of this case"
// @Success      200      {array}   domain.Document
// @Router       /documents [get]
func (h *ResourceHandler) ListDocuments(c echo.Context) error {
	owner, err := identity(c)
	if err != nil {
		return err
	}
	docs, err := h.service.ListDocuments(c.Request().Context(), owner, c.QueryParam("case_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(docs))
}

// CreateBooking handles POST /bookings.
//
// @Summary      Book a consultation
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking"
// @Success      201   {object}  domain.Booking
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bookings [post]
func (h *ResourceHandler) CreateBooking(c echo.Context) error {
	client, err := identity(c)
	if err != nil {
		return err
	}
	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	booking, err := h.service.CreateBooking(c.Request().Context(), client, ports.CreateBookingInput{
		LawyerID:    req.LawyerID,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, booking)
}

// ListBookings handles GET /bookings.
//
// @Summary      List my bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Booking
// @Failure      403  {object}  errorResponse
// @Router       /bookings [get]
func (h *ResourceHandler) ListBookings(c echo.Context) error {
	owner, err := identity(c)
	if err != nil {
		return err
	}
	bookings, err := h.service.ListBookings(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(bookings))
}

// UpdateBookingStatus handles PATCH /bookings/:id/status.
//
// @Summary      Update a booking's status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Booking id"
// @Param        body  body      bookingStatusRequest  true  "New status"
// @Success      200   {object}  domain.Booking
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bookings/{id}/status [patch]
func (h *ResourceHandler) UpdateBookingStatus(c echo.Context) error {
	lawyer, err := identity(c)
	if err != nil {
		return err
	}
	var req bookingStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	booking, err := h.service.UpdateBookingStatus(c.Request().Context(), lawyer, c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}
