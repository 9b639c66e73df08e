package memory

import (
	"context"
	"sort"

	"tgorders/domain/market"
)

func marketFromRow(row marketRow) *market.Market {
	return market.RebuildFromDTO(market.ReconstructionDTO{ID: row.ID, Name: row.Name, IsActive: row.IsActive})
}

type marketRepository struct{ uow *UnitOfWork }

func (r marketRepository) MarketByID(ctx context.Context, id string) (*market.Market, error) {
	row, ok := r.uow.read().markets[id]
	if !ok {
		return nil, market.NewMarketNotExistsError(id)
	}
	return marketFromRow(row), nil
}

func (r marketRepository) AddMarket(ctx context.Context, m *market.Market) error {
	st := r.uow.write()
	if _, exists := st.markets[m.ID()]; exists {
		return market.NewMarketAlreadyExistsError(m.Name())
	}
	if nameTaken(st, m) {
		return market.NewMarketAlreadyExistsError(m.Name())
	}
	st.markets[m.ID()] = marketRow{ID: m.ID(), Name: m.Name(), IsActive: m.IsActive()}
	return nil
}

func (r marketRepository) EditMarket(ctx context.Context, m *market.Market) error {
	st := r.uow.write()
	if _, exists := st.markets[m.ID()]; !exists {
		return market.NewMarketNotExistsError(m.ID())
	}
	if nameTaken(st, m) {
		return market.NewMarketAlreadyExistsError(m.Name())
	}
	st.markets[m.ID()] = marketRow{ID: m.ID(), Name: m.Name(), IsActive: m.IsActive()}
	return nil
}

func nameTaken(st *state, m *market.Market) bool {
	for _, row := range st.markets {
		if row.ID != m.ID() && row.Name == m.Name() {
			return true
		}
	}
	return false
}

func (r marketRepository) DeleteMarket(ctx context.Context, id string) error {
	st := r.uow.write()
	if _, exists := st.markets[id]; !exists {
		return market.NewMarketNotExistsError(id)
	}
	for _, o := range st.orders {
		if o.MarketID == id {
			return market.NewCantDeleteWithOrdersError(id)
		}
	}
	delete(st.markets, id)
	return nil
}

type marketReader struct{ uow *UnitOfWork }

func (r marketReader) AllMarkets(ctx context.Context, onlyActive bool) ([]*market.Market, error) {
	result := make([]*market.Market, 0)
	for _, row := range r.uow.read().markets {
		if onlyActive && !row.IsActive {
			continue
		}
		result = append(result, marketFromRow(row))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

func (r marketReader) MarketByID(ctx context.Context, id string) (*market.Market, error) {
	return marketRepository(r).MarketByID(ctx, id)
}
