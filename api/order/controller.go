/*
Package order serves orders under /orders.

Confirming through the API runs the same use case as the bot keyboard: the
creator is notified and the confirmers' keyboards are cleared after the
commit.
*/
package order

import (
	"net/http"

	"tgorders/api/ctxutil"
	"tgorders/api/response"
	apporder "tgorders/application/order"
	"tgorders/domain/order"

	"github.com/gin-gonic/gin"
)

type Controller struct{}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/orders")
	{
		group.GET("", c.GetAllOrders)
		group.GET("/:id", c.GetOrder)
		group.GET("/users/:id", c.GetUserOrders)
		group.POST("", c.CreateOrder)
		group.POST("/:id/confirm", c.ConfirmOrder)
	}
}

// GetAllOrders answers newest first.
func (c *Controller) GetAllOrders(ctx *gin.Context) {
	orders, err := ctxutil.Session(ctx).Orders().GetAllOrders(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

func (c *Controller) GetOrder(ctx *gin.Context) {
	o, err := ctxutil.Session(ctx).Orders().GetOrderByID(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, o, "order retrieved successfully")
}

func (c *Controller) GetUserOrders(ctx *gin.Context) {
	userID, ok := ctxutil.Int64Param(ctx, "id")
	if !ok {
		return
	}

	orders, err := ctxutil.Session(ctx).Orders().GetUserOrders(ctxutil.WithRequestID(ctx), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "user orders retrieved successfully")
}

// CreateOrder places an order on behalf of the acting user.
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req apporder.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	s := ctxutil.Session(ctx)
	req.CreatorID = s.Actor().ID()
	o, err := s.Orders().AddOrder(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, o, "order created successfully")
}

// ConfirmOrder records the acting user as the confirmer.
// POST /api/v1/orders/:id/confirm {"status": "YES"|"NO"}
func (c *Controller) ConfirmOrder(ctx *gin.Context) {
	var req apporder.ConfirmOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.OrderID = ctx.Param("id")

	s := ctxutil.Session(ctx)
	actor := s.Actor()
	o, err := s.Orders().ChangeConfirmStatus(ctxutil.WithRequestID(ctx), req, order.UserRef{ID: actor.ID(), Name: actor.Name()})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, o, "order confirm status changed successfully")
}
