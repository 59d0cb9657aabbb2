package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

type chatRequest struct {
	Message      string `json:"message"       validate:"required"`
	SessionID    string `json:"session_id"`
	SystemPrompt string `json:"system_prompt"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// Send handles POST /chat.
//
// @Summary      Ask the legal assistant
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatRequest  true  "Message"
// @Success      200   {object}  chatResponse
// @Failure      503   {object}  errorResponse
// @Failure      504   {object}  errorResponse
// @Router       /chat [post]
func (h *ChatHandler) Send(c echo.Context) error {
	user, err := identity(c)
	if err != nil {
		return err
	}
	var req chatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	reply, err := h.service.Send(c.Request().Context(), user, req.Message, req.SystemPrompt)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chatResponse{Response: reply.Response, SessionID: reply.SessionID})
}

// SendGuest handles POST /chat/guest. Guests are rate limited per client IP
// and their exchanges are not stored.
//
// @Summary      Ask the legal assistant as a guest
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      chatRequest  true  "Message"
// @Success      200   {object}  chatResponse
// @Failure      429   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /chat/guest [post]
func (h *ChatHandler) SendGuest(c echo.Context) error {
	var req chatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	reply, err := h.service.SendGuest(c.Request().Context(), req.SessionID, req.Message, req.SystemPrompt)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chatResponse{Response: reply.Response, SessionID: reply.SessionID})
}

// History handles GET /chat/history.
//
// @Summary      My recent chat exchanges
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ChatExchange
// @Router       /chat/history [get]
func (h *ChatHandler) History(c echo.Context) error {
	user, err := identity(c)
	if err != nil {
		return err
	}
	history, err := h.service.History(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(history))
}
