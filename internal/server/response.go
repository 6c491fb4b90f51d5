// internal/server/response.go
//
// 本檔負責統一 HTTP 錯誤回應格式與 bank 錯誤 → HTTP 狀態碼的對應。
// 錯誤回應一律為 {"message": "..."}；驗證失敗另附 details。
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bankledger/internal/bank"
)

type errorResponse struct {
	Message string            `json:"message"`
	Details []validationError `json:"details,omitempty"`
}

// statusFor 將領域錯誤對應到 HTTP 狀態碼。
func statusFor(err error) int {
	switch {
	case errors.Is(err, bank.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, bank.ErrInsufficientFunds):
		return http.StatusConflict
	case errors.Is(err, bank.ErrInvalidAmount),
		errors.Is(err, bank.ErrInvalidOverdraft),
		errors.Is(err, bank.ErrUnknownAccountType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeErr 統一輸出領域錯誤。
// 未知錯誤不直接外露訊息。
func (s *Server) writeErr(c *gin.Context, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.log.Error("request.failed", "path", c.Request.URL.Path, "err", err)
		msg = "internal error"
	}
	respondWithError(c, code, msg)
}

func respondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, errorResponse{Message: message})
}

func respondWithValidationError(c *gin.Context, details []validationError) {
	c.JSON(http.StatusBadRequest, errorResponse{
		Message: "Invalid request data",
		Details: details,
	})
}
