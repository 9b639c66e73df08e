package po

import "tgorders/domain/market"

type MarketPO struct {
	ID       string `gorm:"primaryKey;size:36"`
	Name     string `gorm:"size:255;not null;uniqueIndex:uq_market_name"`
	IsActive bool   `gorm:"not null;default:true"`
}

func (MarketPO) TableName() string {
	return "market"
}

func FromMarketDomain(m *market.Market) *MarketPO {
	return &MarketPO{ID: m.ID(), Name: m.Name(), IsActive: m.IsActive()}
}

func (po *MarketPO) ToDomain() *market.Market {
	return market.RebuildFromDTO(market.ReconstructionDTO{ID: po.ID, Name: po.Name, IsActive: po.IsActive})
}
