package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stablearb/arbgate/internal/apperror"
)

// apiResponse is the envelope every JSON endpoint answers with.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ok answers 200 with a success envelope.
func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, apiResponse{Success: true, Data: data})
}

// failContract answers contract and transport failures. These stay
// HTTP 200 with success:false; only explicit validation failures use
// non-200 statuses.
func failContract(c *gin.Context, err error) {
	c.JSON(http.StatusOK, apiResponse{Success: false, Error: errorMessage(err)})
}

// failValidation answers an explicit request validation failure.
func failValidation(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, apiResponse{Success: false, Error: msg})
}

// errorMessage renders an error for the response envelope. AppError
// context (method names, tx hashes) rides along so failures are
// diagnosable from the UI.
func errorMessage(err error) string {
	if err == nil {
		return "Unknown error"
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Context != "" {
			return appErr.Message + ": " + appErr.Context
		}
		return appErr.Message
	}
	return err.Error()
}
