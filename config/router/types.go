package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// ServiceResult is what handlers hand back to the dispatch layer. Success
// results are written as their bare Data payload; error results are written
// as a {code, message, details} envelope. Message is only meaningful for
// errors.
type ServiceResult struct {
	StatusCode int
	Data       any
	Message    string
}

type RateLimitResponse struct {
	Limit      int    `json:"limit"`
	Window     string `json:"window"`
	RetryAfter string `json:"retry_after"`
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	version      string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

// ToErrorBody is the wire shape for every non-2xx response.
func (result *ServiceResult) ToErrorBody() gin.H {
	return gin.H{
		"code":    result.StatusCode,
		"message": result.Message,
		"details": result.Data,
	}
}

func (result *ServiceResult) IsSuccess() bool {
	return result.StatusCode >= 200 && result.StatusCode < 300
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}
