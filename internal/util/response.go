// Package util holds the JSON response envelope shared by the user and
// admin APIs. Every handler replies with {code, data, message}: code 0 for
// success, -1 for errors, with the transport status carried on the HTTP
// layer.
package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Data:    data,
		Message: message,
	})
}

// Error writes an error envelope and logs it with the request route, so a
// repeated message in the log still points at one endpoint.
func Error(c *gin.Context, code int, err interface{}) {
	var msg string
	switch e := err.(type) {
	case string:
		msg = e
	case error:
		msg = e.Error()
	default:
		msg = "Internal Server Error"
	}

	zap.S().Errorf("%s %s: %s", c.Request.Method, c.Request.URL.Path, msg)

	c.JSON(code, Response{
		Code:    -1,
		Data:    nil,
		Message: msg,
	})
}
