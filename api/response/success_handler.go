package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func write(c *gin.Context, status int, data any, message string) {
	c.JSON(status, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      status,
		RequestID: GetRequestID(c),
	})
}

func HandleSuccess(c *gin.Context, data any, message string) {
	write(c, http.StatusOK, data, message)
}

// HandleCreated answers a POST that added a market, goods node, user or order.
func HandleCreated(c *gin.Context, data any, message string) {
	write(c, http.StatusCreated, data, message)
}

func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
