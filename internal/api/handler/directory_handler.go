package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

// DirectoryHandler serves the public lawyer and law firm listings and the
// waitlist signup.
type DirectoryHandler struct {
	service ports.DirectoryService
}

func NewDirectoryHandler(service ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

type waitlistRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Message  string `json:"message"`
}

// Lawyers handles GET /lawyers.
//
// @Summary      Approved lawyer directory
// @Tags         lawyers
// @Produce      json
// @Success      200  {array}  domain.Identity
// @Router       /lawyers [get]
func (h *DirectoryHandler) Lawyers(c echo.Context) error {
	lawyers, err := h.service.ListLawyers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(lawyers))
}

// LawFirms handles GET /lawfirms.
//
// @Summary      Law firm directory
// @Tags         lawfirms
// @Produce      json
// @Success      200  {array}  domain.Identity
// @Router       /lawfirms [get]
func (h *DirectoryHandler) LawFirms(c echo.Context) error {
	firms, err := h.service.ListLawFirms(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(firms))
}

// JoinWaitlist handles POST /waitlist.
//
// @Summary      Join the waitlist
// @Tags         waitlist
// @Accept       json
// @Produce      json
// @Param        body  body      waitlistRequest  true  "Signup"
// @Success      201   {object}  domain.WaitlistEntry
// @Failure      409   {object}  errorResponse
// @Router       /waitlist [post]
func (h *DirectoryHandler) JoinWaitlist(c echo.Context) error {
	var req waitlistRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	entry, err := h.service.JoinWaitlist(c.Request().Context(), ports.JoinWaitlistInput{
		Email:    req.Email,
		FullName: req.FullName,
		Message:  req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}
