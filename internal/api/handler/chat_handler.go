package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/marketplace-api/internal/core/ports"
	"github.com/collabhub/marketplace-api/internal/infrastructure/queue"
)

type ChatHandler struct {
	chats      ports.ChatService
	dispatcher *queue.Dispatcher
}

func NewChatHandler(chats ports.ChatService, dispatcher *queue.Dispatcher) *ChatHandler {
	return &ChatHandler{chats: chats, dispatcher: dispatcher}
}

type sendMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

type sendMessageResponse struct {
	ConversationID string `json:"conversation_id"`
	Accepted       bool   `json:"accepted"`
}

// List returns the caller's conversations, most recently active first.
//
// @Summary      List conversations
// @Tags         chats
// @Produce      json
// @Success      200  {array}  domain.Conversation
// @Security     BearerAuth
// @Router       /chats [get]
func (h *ChatHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	conversations, err := h.chats.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conversations)
}

// Messages returns a conversation's messages in send order.
//
// @Summary      List messages
// @Tags         chats
// @Produce      json
// @Param        id     path     string  true   "Conversation id"
// @Param        limit  query    int     false  "Page size"
// @Success      200  {array}  domain.Message
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /chats/{id}/messages [get]
func (h *ChatHandler) Messages(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	messages, err := h.chats.Messages(c.Request().Context(), userID, c.Param("id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}

// Send accepts a message for delivery. The participant check runs inline
// so a bad request fails fast; persistence happens on the dispatcher
// worker that owns the conversation, which keeps per-conversation order.
//
// @Summary      Send a message
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Conversation id"
// @Param        body  body      sendMessageRequest  true  "Message body"
// @Success      202   {object}  sendMessageResponse
// @Failure      403   {object}  map[string]string
// @Security     BearerAuth
// @Router       /chats/{id}/messages [post]
func (h *ChatHandler) Send(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	conversationID := c.Param("id")
	conversation, err := h.chats.Get(c.Request().Context(), userID, conversationID)
	if err != nil {
		return err
	}

	h.dispatcher.Enqueue(ports.OutboundMessage{
		ConversationID: conversation.ID,
		SenderID:       userID,
		Body:           req.Body,
	})
	return c.JSON(http.StatusAccepted, sendMessageResponse{ConversationID: conversation.ID, Accepted: true})
}
