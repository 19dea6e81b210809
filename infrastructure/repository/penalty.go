package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-hub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
)

const penaltiesTable = "penalties"

type PenaltyRepository interface {
	Create(ctx context.Context, penalty *domain.Penalty, event *domain.Event) error
	ExistsForCampaignInfluencer(ctx context.Context, campaignID, influencerID string) (bool, error)
	ListByInfluencer(ctx context.Context, influencerID string) ([]*domain.Penalty, error)
}

type penaltyRepository struct {
	conn *postgres.Connection
}

func NewPenaltyRepository(conn *postgres.Connection) PenaltyRepository {
	return &penaltyRepository{
		conn: conn,
	}
}

const penaltyColumns = "id, campaign_id, influencer_id, reason, description, penalty_type, status, applied_by, created_at"

func (r *penaltyRepository) Create(ctx context.Context, penalty *domain.Penalty, event *domain.Event) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		penaltySQL, penaltyArgs, err := squirrel.
			Insert(penaltiesTable).
			Columns("id", "campaign_id", "influencer_id", "reason", "description",
				"penalty_type", "status", "applied_by", "created_at").
			Values(penalty.ID, penalty.CampaignID, penalty.InfluencerID, penalty.Reason,
				penalty.Description, penalty.PenaltyType, penalty.Status,
				penalty.AppliedBy, penalty.CreatedAt).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, penaltySQL, penaltyArgs...); err != nil {
			return fmt.Errorf("erro ao criar penalidade: %w", err)
		}

		return insertEventTx(ctx, tx, event)
	})
}

// ExistsForCampaignInfluencer evita penalidades duplicadas quando a detecção
// de atraso roda mais de uma vez sobre a mesma campanha
func (r *penaltyRepository) ExistsForCampaignInfluencer(ctx context.Context, campaignID, influencerID string) (bool, error) {
	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(penaltiesTable).
		Where(squirrel.Eq{"campaign_id": campaignID, "influencer_id": influencerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	var total int
	if err := r.conn.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return false, fmt.Errorf("erro ao contar penalidades: %w", err)
	}

	return total > 0, nil
}

func (r *penaltyRepository) ListByInfluencer(ctx context.Context, influencerID string) ([]*domain.Penalty, error) {
	penaltiesSQL, penaltiesArgs, err := squirrel.
		Select(penaltyColumns).
		From(penaltiesTable).
		Where(squirrel.Eq{"influencer_id": influencerID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, penaltiesSQL, penaltiesArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	penalties := make([]*domain.Penalty, 0)

	for rows.Next() {
		penalty := &domain.Penalty{}

		if err := rows.Scan(
			&penalty.ID,
			&penalty.CampaignID,
			&penalty.InfluencerID,
			&penalty.Reason,
			&penalty.Description,
			&penalty.PenaltyType,
			&penalty.Status,
			&penalty.AppliedBy,
			&penalty.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a penalidade: %w", err)
		}

		penalties = append(penalties, penalty)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return penalties, nil
}
