package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	UserType string `json:"user_type" validate:"required,oneof=client lawyer law_firm"`
	Phone    string `json:"phone"`
	FirmName string `json:"firm_name"`
}

type loginRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required"`
	UserType string `json:"user_type" validate:"required,oneof=client lawyer law_firm"`
}

// credentialsRequest is the body of the role-specific login endpoints.
type credentialsRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type paidRegistrationRequest struct {
	Email           string   `json:"email"            validate:"required,email"`
	Password        string   `json:"password"         validate:"required,min=6"`
	FullName        string   `json:"full_name"        validate:"required"`
	Phone           string   `json:"phone"`
	CompanyName     string   `json:"company_name"`
	CaseType        string   `json:"case_type"        validate:"required"`
	CaseDescription string   `json:"case_description" validate:"required"`
	LawFirmID       string   `json:"law_firm_id"      validate:"required"`
	LawFirmName     string   `json:"law_firm_name"    validate:"required"`
	PaymentStatus   string   `json:"payment_status"   validate:"required,oneof=paid"`
	PaymentAmount   *float64 `json:"payment_amount"`
}

type authResponse struct {
	Token string           `json:"token"`
	User  *domain.Identity `json:"user"`
	Role  domain.Role      `json:"role"`
}

type adminLoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

func newAuthResponse(res *ports.AuthResult) authResponse {
	return authResponse{Token: res.Token, User: res.Identity, Role: res.Identity.Role}
}

// Register creates a client, lawyer or law firm account directly.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     domain.Role(req.UserType),
		Phone:    req.Phone,
		FirmName: req.FirmName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newAuthResponse(res))
}

// Login authenticates an account for the requested role.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.login(c, req.Email, req.Password, domain.Role(req.UserType))
}

// FirmLawyerLogin handles POST /firm-lawyers/login.
//
// @Summary      Firm lawyer login
// @Tags         firm-lawyers
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /firm-lawyers/login [post]
func (h *AuthHandler) FirmLawyerLogin(c echo.Context) error {
	return h.roleLogin(c, domain.RoleFirmLawyer)
}

// FirmClientLogin handles POST /firm-clients/login.
//
// @Summary      Firm client login
// @Tags         firm-clients
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /firm-clients/login [post]
func (h *AuthHandler) FirmClientLogin(c echo.Context) error {
	return h.roleLogin(c, domain.RoleFirmClient)
}

func (h *AuthHandler) roleLogin(c echo.Context, role domain.Role) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.login(c, req.Email, req.Password, role)
}

func (h *AuthHandler) login(c echo.Context, email, password string, role domain.Role) error {
	res, err := h.authService.Login(c.Request().Context(), email, password, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAuthResponse(res))
}

// RegisterPaid creates an active firm client after payment, skipping review.
//
// @Summary      Register a paid firm client
// @Tags         firm-clients
// @Accept       json
// @Produce      json
// @Param        body  body      paidRegistrationRequest  true  "Client details"
// @Success      201   {object}  authResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /firm-clients/register-paid [post]
func (h *AuthHandler) RegisterPaid(c echo.Context) error {
	var req paidRegistrationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.RegisterPaidClient(c.Request().Context(), ports.PaidRegistrationInput{
		Email:         req.Email,
		Password:      req.Password,
		FullName:      req.FullName,
		Phone:         req.Phone,
		PaymentStatus: req.PaymentStatus,
		PaymentAmount: req.PaymentAmount,
		Profile: domain.FirmClientProfile{
			CompanyName:     req.CompanyName,
			CaseType:        req.CaseType,
			CaseDescription: req.CaseDescription,
			LawFirmID:       req.LawFirmID,
			LawFirmName:     req.LawFirmName,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newAuthResponse(res))
}

// Me returns the authenticated account.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ident)
}

// AdminLogin exchanges the configured admin credentials for an admin token.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Admin credentials"
// @Success      200   {object}  adminLoginResponse
// @Failure      401   {object}  errorResponse
// @Router       /admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminLoginResponse{Token: token, Message: "Login successful"})
}
