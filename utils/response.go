package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope every endpoint answers with. Code is an
// application error code, zero on success.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes the envelope with an explicit HTTP status.
func Respond(ctx *gin.Context, status, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{Code: code, Message: message, Data: data})
}

// Success answers 200 with the payload.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, 0, "success", data)
}

// Error answers with an error code and no payload.
func Error(ctx *gin.Context, status, code int, message string) {
	Respond(ctx, status, code, message, nil)
}
