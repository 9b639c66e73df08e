/*
Package response writes the JSON envelope of the admin API.

	success: { success: true, data: {...}, message: "...", code: 200, request_id: "..." }
	failure: { success: false, error: "ERROR_CODE", message: "...", code: 4xx/5xx, request_id: "..." }

Internal errors are logged with their stack and answered with a generic
message.
*/
package response

import (
	stdErrors "errors"
	"net/http"
	"runtime"

	"tgorders/domain/shared"
	"tgorders/pkg/errors"
	"tgorders/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

func captureStack(skip int) []string {
	var pcs [16]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		frame, more := frames.Next()
		if frame.Function != "" {
			stack = append(stack, frame.Function)
		}
		if !more {
			break
		}
	}
	return stack
}

// fail aborts with the failure envelope.
func fail(c *gin.Context, status int, code errors.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, &Response{
		Error:     string(code),
		Message:   message,
		Code:      status,
		RequestID: GetRequestID(c),
	})
}

func requestFields(c *gin.Context) []zap.Field {
	return []zap.Field{
		zap.String("request_id", GetRequestID(c)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	}
}

// HandleError answers malformed bodies, ids and query parameters.
func HandleError(c *gin.Context, err error, message string, status int) {
	logger.Warn(message, append(requestFields(c), zap.Int("status", status), zap.Error(err))...)
	fail(c, status, errors.CodeBadRequest, message)
}

// HandleAppError answers a use case failure. Server-side failures are logged
// with a stack and hidden behind a generic message.
func HandleAppError(c *gin.Context, err error) {
	appErr := errors.FromDomainError(err)
	status := appErr.HTTPStatusCode()

	fields := append(requestFields(c), zap.String("error_code", string(appErr.Code)), zap.Int("http_status", status))
	if appErr.Field != "" {
		fields = append(fields, zap.String("field", appErr.Field))
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}

	if status < http.StatusInternalServerError {
		logger.Warn(appErr.Message, fields...)
		fail(c, status, appErr.Code, appErr.Message)
		return
	}
	logger.Error(appErr.Message, append(fields, zap.Strings("stack", extractStack(err)))...)
	fail(c, status, appErr.Code, "internal server error")
}

func extractStack(err error) []string {
	var stacker shared.Stacker
	if stdErrors.As(err, &stacker) {
		if stack := stacker.Stack(); len(stack) > 0 {
			return stack
		}
	}
	return captureStack(4)
}
