package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscare/complaint-api/internal/core/service"
)

// ChatbotHandler handles the public FAQ bot endpoint.
type ChatbotHandler struct {
	bot *service.ChatbotService
}

func NewChatbotHandler(bot *service.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{bot: bot}
}

type chatbotRequest struct {
	Message string `json:"message" validate:"required"`
}

// Message handles POST /api/chatbot/message.
//
// @Summary      Ask the FAQ bot
// @Tags         chatbot
// @Accept       json
// @Produce      json
// @Param        body  body      chatbotRequest  true  "User message"
// @Success      200   {object}  service.ChatbotReply
// @Failure      400   {object}  map[string]string
// @Router       /api/chatbot/message [post]
func (h *ChatbotHandler) Message(c echo.Context) error {
	var req chatbotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, h.bot.Reply(req.Message))
}
