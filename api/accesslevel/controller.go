// Package accesslevel serves the access level catalog under /access-levels.
package accesslevel

import (
	"tgorders/api/ctxutil"
	"tgorders/api/response"

	"github.com/gin-gonic/gin"
)

type Controller struct{}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/access-levels")
	{
		group.GET("", c.GetAccessLevels)
		group.GET("/users/:id", c.GetUserAccessLevels)
	}
}

func (c *Controller) GetAccessLevels(ctx *gin.Context) {
	levels, err := ctxutil.Session(ctx).AccessLevels().GetAccessLevels(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, levels, "access levels retrieved successfully")
}

func (c *Controller) GetUserAccessLevels(ctx *gin.Context) {
	userID, ok := ctxutil.Int64Param(ctx, "id")
	if !ok {
		return
	}

	levels, err := ctxutil.Session(ctx).AccessLevels().GetUserAccessLevels(ctxutil.WithRequestID(ctx), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, levels, "user access levels retrieved successfully")
}
