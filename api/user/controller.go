// Package user serves Telegram users under /users.
package user

import (
	"net/http"

	"tgorders/api/ctxutil"
	"tgorders/api/response"
	appuser "tgorders/application/user"

	"github.com/gin-gonic/gin"
)

type Controller struct{}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/users")
	{
		group.GET("", c.GetUsers)
		group.GET("/confirmers", c.GetConfirmers)
		group.GET("/:id", c.GetUser)
		group.POST("", c.CreateUser)
		group.PATCH("/:id", c.PatchUser)
		group.POST("/:id/block", c.BlockUser)
		group.DELETE("/:id", c.DeleteUser)
	}
}

func (c *Controller) GetUsers(ctx *gin.Context) {
	users, err := ctxutil.Session(ctx).Users().GetUsers(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, users, "users retrieved successfully")
}

// GetConfirmers lists the users holding CONFIRMATION.
func (c *Controller) GetConfirmers(ctx *gin.Context) {
	users, err := ctxutil.Session(ctx).Users().GetUsersForConfirmation(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, users, "confirmers retrieved successfully")
}

func (c *Controller) GetUser(ctx *gin.Context) {
	id, ok := ctxutil.Int64Param(ctx, "id")
	if !ok {
		return
	}

	u, err := ctxutil.Session(ctx).Users().GetUser(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, u, "user retrieved successfully")
}

func (c *Controller) CreateUser(ctx *gin.Context) {
	var req appuser.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	u, err := ctxutil.Session(ctx).Users().AddUser(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, u, "user created successfully")
}

// PatchUser may move the user to another Telegram id through the "id" field.
func (c *Controller) PatchUser(ctx *gin.Context) {
	id, ok := ctxutil.Int64Param(ctx, "id")
	if !ok {
		return
	}
	var req appuser.PatchUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.ID = id

	u, err := ctxutil.Session(ctx).Users().PatchUser(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, u, "user updated successfully")
}

func (c *Controller) BlockUser(ctx *gin.Context) {
	id, ok := ctxutil.Int64Param(ctx, "id")
	if !ok {
		return
	}

	u, err := ctxutil.Session(ctx).Users().BlockUser(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, u, "user blocked successfully")
}

func (c *Controller) DeleteUser(ctx *gin.Context) {
	id, ok := ctxutil.Int64Param(ctx, "id")
	if !ok {
		return
	}

	if err := ctxutil.Session(ctx).Users().DeleteUser(ctxutil.WithRequestID(ctx), id); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
