// Package goods serves the goods catalog under /goods.
package goods

import (
	"net/http"

	"tgorders/api/ctxutil"
	"tgorders/api/response"
	appgoods "tgorders/application/goods"

	"github.com/gin-gonic/gin"
)

type Controller struct{}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/goods")
	{
		group.GET("", c.GetGoodsInFolder)
		group.GET("/:id", c.GetGoods)
		group.GET("/:id/parent", c.GetParentFolder)
		group.POST("", c.CreateGoods)
		group.PATCH("/:id", c.PatchGoods)
		group.DELETE("/:id", c.DeleteGoods)
	}
}

// GetGoodsInFolder lists one folder; without parent_id it lists the root.
// GET /api/v1/goods?parent_id=&only_active=
func (c *Controller) GetGoodsInFolder(ctx *gin.Context) {
	var q appgoods.GoodsInFolderQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}
	if q.ParentID != nil && *q.ParentID == "" {
		q.ParentID = nil
	}

	items, err := ctxutil.Session(ctx).Goods().GetGoodsInFolder(ctxutil.WithRequestID(ctx), q)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, items, "goods retrieved successfully")
}

func (c *Controller) GetGoods(ctx *gin.Context) {
	g, err := ctxutil.Session(ctx).Goods().GetGoodsByID(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, g, "goods retrieved successfully")
}

// GetParentFolder answers null data for a root node.
func (c *Controller) GetParentFolder(ctx *gin.Context) {
	parent, err := ctxutil.Session(ctx).Goods().GetParentFolder(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, parent, "parent folder retrieved successfully")
}

func (c *Controller) CreateGoods(ctx *gin.Context) {
	var req appgoods.CreateGoodsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	g, err := ctxutil.Session(ctx).Goods().AddGoods(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, g, "goods created successfully")
}

func (c *Controller) PatchGoods(ctx *gin.Context) {
	var req appgoods.PatchGoodsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.ID = ctx.Param("id")

	g, err := ctxutil.Session(ctx).Goods().PatchGoods(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, g, "goods updated successfully")
}

func (c *Controller) DeleteGoods(ctx *gin.Context) {
	if err := ctxutil.Session(ctx).Goods().DeleteGoods(ctxutil.WithRequestID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
