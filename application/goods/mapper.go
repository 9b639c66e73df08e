package goods

import "tgorders/domain/goods"

func toGoodsResponse(g *goods.Goods) *GoodsResponse {
	return &GoodsResponse{
		ID:       g.ID(),
		Name:     g.Name(),
		Type:     string(g.Type()),
		SKU:      g.SKU(),
		IsActive: g.IsActive(),
		ParentID: g.ParentID(),
	}
}

func toGoodsResponses(items []*goods.Goods) []*GoodsResponse {
	responses := make([]*GoodsResponse, len(items))
	for i, g := range items {
		responses[i] = toGoodsResponse(g)
	}
	return responses
}
