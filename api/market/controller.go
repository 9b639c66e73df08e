// Package market serves delivery destinations under /markets.
package market

import (
	"net/http"

	"tgorders/api/ctxutil"
	"tgorders/api/response"
	appmarket "tgorders/application/market"

	"github.com/gin-gonic/gin"
)

type Controller struct{}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/markets")
	{
		group.GET("", c.GetAllMarkets)
		group.GET("/:id", c.GetMarket)
		group.POST("", c.CreateMarket)
		group.PATCH("/:id", c.PatchMarket)
		group.DELETE("/:id", c.DeleteMarket)
	}
}

type listQuery struct {
	OnlyActive bool `form:"only_active"`
}

// GetAllMarkets GET /api/v1/markets?only_active=
func (c *Controller) GetAllMarkets(ctx *gin.Context) {
	var q listQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	markets, err := ctxutil.Session(ctx).Markets().GetAllMarkets(ctxutil.WithRequestID(ctx), q.OnlyActive)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, markets, "markets retrieved successfully")
}

func (c *Controller) GetMarket(ctx *gin.Context) {
	m, err := ctxutil.Session(ctx).Markets().GetMarket(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, m, "market retrieved successfully")
}

func (c *Controller) CreateMarket(ctx *gin.Context) {
	var req appmarket.CreateMarketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	m, err := ctxutil.Session(ctx).Markets().AddMarket(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, m, "market created successfully")
}

func (c *Controller) PatchMarket(ctx *gin.Context) {
	var req appmarket.PatchMarketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.ID = ctx.Param("id")

	m, err := ctxutil.Session(ctx).Markets().PatchMarket(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, m, "market updated successfully")
}

func (c *Controller) DeleteMarket(ctx *gin.Context) {
	if err := ctxutil.Session(ctx).Markets().DeleteMarket(ctxutil.WithRequestID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
