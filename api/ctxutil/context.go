// Package ctxutil moves per-request values between gin and the layers below.
package ctxutil

import (
	"context"
	"net/http"
	"strconv"

	"tgorders/api/response"
	"tgorders/application/session"
	"tgorders/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// WithRequestID carries the request id into SQL logs.
func WithRequestID(c *gin.Context) context.Context {
	return persistence.ContextWithRequestID(c.Request.Context(), response.GetRequestID(c))
}

func SetSession(c *gin.Context, s *session.Session) {
	c.Set(sessionKey, s)
}

// Session is set by the authentication middleware on every /api/v1 route.
func Session(c *gin.Context) *session.Session {
	s, _ := c.MustGet(sessionKey).(*session.Session)
	return s
}

// Int64Param parses a path parameter and answers 400 when it is not an
// integer.
func Int64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.HandleError(c, err, name+" must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return v, true
}
