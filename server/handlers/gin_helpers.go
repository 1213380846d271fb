package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "ttsguard/server/errors"
	"ttsguard/server/middleware"
)

// ErrorResponse структура ошибки
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// SendJSONResponse отправляет JSON ответ через Gin context
func SendJSONResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendJSONError отправляет JSON ошибку через Gin context и логирует её
func SendJSONError(c *gin.Context, statusCode int, message string) {
	slog.Error("HTTP error",
		"error", message,
		"status_code", statusCode,
		"request_id", middleware.GetRequestIDFromGin(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	c.JSON(statusCode, ErrorResponse{
		Error:   true,
		Message: message,
	})
}

// HandleError переводит ошибку сервиса в HTTP ответ
func HandleError(c *gin.Context, err error, context string) {
	appErr := apperrors.WrapError(err, context)
	SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
}

// ParseIDParam разбирает числовой параметр пути. При ошибке пишет 400 и
// возвращает false
func ParseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		SendJSONError(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// ParseIntQuery разбирает числовой query-параметр с значением по умолчанию
func ParseIntQuery(c *gin.Context, name string, defaultValue int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	if value, err := strconv.Atoi(raw); err == nil {
		return value
	}
	return defaultValue
}
