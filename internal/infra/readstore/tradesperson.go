package readstore

import (
	"context"

	"leadmarket/internal/infra"
	"leadmarket/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TradespersonReadStore struct {
	pool *pgxpool.Pool
}

func NewTradespersonReadStore(pool *pgxpool.Pool) *TradespersonReadStore {
	return &TradespersonReadStore{pool: pool}
}

// ActiveCandidates returns every active tradesperson with verified contact
// info, the fan-out population for new-lead notifications.
func (s *TradespersonReadStore) ActiveCandidates(ctx context.Context) ([]queries.CandidateView, error) {
	const q = `
		SELECT id, name, phone, email, trades, lat, lng, radius_miles, location
		FROM users
		WHERE role = 'tradesperson'
		  AND status = 'active'
		  AND contact_verified = true`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list candidates", err)
	}
	defer rows.Close()

	candidates := make([]queries.CandidateView, 0)
	for rows.Next() {
		var c queries.CandidateView
		err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Trades, &c.Lat, &c.Lng, &c.RadiusMiles, &c.Location)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan candidate", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate candidates", err)
	}
	return candidates, nil
}

func (s *TradespersonReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TradespersonView, error) {
	const q = `
		SELECT id, name, trades, lat, lng, radius_miles, location, membership_tier
		FROM users
		WHERE id = $1 AND role = 'tradesperson' AND status = 'active'`

	var v queries.TradespersonView
	err := s.pool.QueryRow(ctx, q, id).Scan(
		&v.ID, &v.Name, &v.Trades, &v.Lat, &v.Lng, &v.RadiusMiles, &v.Location, &v.Tier,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find tradesperson", err)
	}
	return &v, nil
}
