package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/campaign-hub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
)

const campaignsTable = "campaigns"

// UpdateCampaignStatusParams descreve uma transição condicional de status.
// A escrita só é aplicada se o status atual for exatamente From
type UpdateCampaignStatusParams struct {
	ID          string
	From        domain.CampaignStatus
	To          domain.CampaignStatus
	OpenedAt    *time.Time
	CompletedAt *time.Time
}

type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, campaignID string) (*domain.Campaign, error)
	UpdateStatus(ctx context.Context, params UpdateCampaignStatusParams, event *domain.Event) error
	ListOpen(ctx context.Context, cursor string, limit uint64) ([]*domain.Campaign, error)
	List(ctx context.Context, filter CampaignFilter) ([]*domain.Campaign, error)
	ListDueBetween(ctx context.Context, statuses []domain.CampaignStatus, from, to time.Time) ([]*domain.Campaign, error)
	ListOverdue(ctx context.Context, statuses []domain.CampaignStatus, now time.Time) ([]*domain.Campaign, error)
	ListReviewedBefore(ctx context.Context, before time.Time) ([]*domain.Campaign, error)
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, statuses ...domain.CampaignStatus) (int, error)
	CountOverdue(ctx context.Context, now time.Time) (int, error)
}

// CampaignFilter restringe a listagem geral de campanhas
type CampaignFilter struct {
	AdvertiserID string
	Statuses     []domain.CampaignStatus
	Cursor       string
	Limit        uint64
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

const campaignColumns = "id, advertiser_id, title, status, estimated_duration, created_at, updated_at, opened_at, completed_at, deadline_date"

func (r *campaignRepository) Create(ctx context.Context, campaign *domain.Campaign) error {
	campaignSQL, campaignArgs, err := squirrel.
		Insert(campaignsTable).
		Columns("id", "advertiser_id", "title", "status", "estimated_duration",
			"created_at", "updated_at", "opened_at", "completed_at", "deadline_date").
		Values(campaign.ID, campaign.AdvertiserID, campaign.Title, campaign.Status,
			campaign.EstimatedDuration, campaign.CreatedAt, campaign.UpdatedAt,
			campaign.OpenedAt, campaign.CompletedAt, campaign.DeadlineDate).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, campaignSQL, campaignArgs...); err != nil {
		return fmt.Errorf("erro ao criar campanha: %w", err)
	}

	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	campaignSQL, campaignArgs, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(ctx, campaignSQL, campaignArgs...)

	campaign, err := deserializeCampaignRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return campaign, nil
}

// UpdateStatus aplica a transição condicionalmente e registra o evento na
// mesma transação. Zero linhas afetadas significa que outra transição venceu
// a corrida (ErrStaleStatus) ou que a campanha não existe (ErrNotFound)
func (r *campaignRepository) UpdateStatus(ctx context.Context, params UpdateCampaignStatusParams, event *domain.Event) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		queryBuilder := squirrel.
			Update(campaignsTable).
			Set("status", params.To).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": params.ID, "status": params.From}).
			PlaceholderFormat(squirrel.Dollar)

		if params.OpenedAt != nil {
			queryBuilder = queryBuilder.Set("opened_at", *params.OpenedAt)
		}

		if params.CompletedAt != nil {
			queryBuilder = queryBuilder.Set("completed_at", *params.CompletedAt)
		}

		updateSQL, updateArgs, err := queryBuilder.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		result, err := tx.ExecContext(ctx, updateSQL, updateArgs...)
		if err != nil {
			return fmt.Errorf("erro ao atualizar status da campanha: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}

		if affected == 0 {
			return r.classifyMissedWrite(ctx, tx, params.ID)
		}

		return insertEventTx(ctx, tx, event)
	})
}

// classifyMissedWrite distingue, ainda dentro da transação, campanha
// inexistente de campanha em status diferente do esperado
func (r *campaignRepository) classifyMissedWrite(ctx context.Context, tx *sql.Tx, campaignID string) error {
	statusSQL, statusArgs, err := squirrel.
		Select("status").
		From(campaignsTable).
		Where(squirrel.Eq{"id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	var current string
	if err := tx.QueryRowContext(ctx, statusSQL, statusArgs...).Scan(&current); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	return ErrStaleStatus
}

// ListOpen retorna campanhas abertas ordenadas por opened_at decrescente.
// O cursor é opaco: o id do último item da página anterior
func (r *campaignRepository) ListOpen(ctx context.Context, cursor string, limit uint64) ([]*domain.Campaign, error) {
	queryBuilder := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"status": domain.CampaignStatusOpen}).
		OrderBy("opened_at DESC", "id DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar)

	if cursor != "" {
		cursorCampaign, err := r.GetByID(ctx, cursor)
		if err != nil {
			return nil, err
		}

		// Cursor inválido ou apontando para campanha removida: recomeça
		// do início em vez de falhar a listagem
		if cursorCampaign != nil && cursorCampaign.OpenedAt != nil {
			queryBuilder = queryBuilder.Where(squirrel.Or{
				squirrel.Lt{"opened_at": *cursorCampaign.OpenedAt},
				squirrel.And{
					squirrel.Eq{"opened_at": *cursorCampaign.OpenedAt},
					squirrel.Lt{"id": cursorCampaign.ID},
				},
			})
		}
	}

	return r.queryCampaigns(ctx, queryBuilder)
}

func (r *campaignRepository) List(ctx context.Context, filter CampaignFilter) ([]*domain.Campaign, error) {
	queryBuilder := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.AdvertiserID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"advertiser_id": filter.AdvertiserID})
	}

	if len(filter.Statuses) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": filter.Statuses})
	}

	if filter.Limit > 0 {
		queryBuilder = queryBuilder.Limit(filter.Limit)
	}

	if filter.Cursor != "" {
		cursorCampaign, err := r.GetByID(ctx, filter.Cursor)
		if err != nil {
			return nil, err
		}

		if cursorCampaign != nil {
			queryBuilder = queryBuilder.Where(squirrel.Or{
				squirrel.Lt{"created_at": cursorCampaign.CreatedAt},
				squirrel.And{
					squirrel.Eq{"created_at": cursorCampaign.CreatedAt},
					squirrel.Lt{"id": cursorCampaign.ID},
				},
			})
		}
	}

	return r.queryCampaigns(ctx, queryBuilder)
}

func (r *campaignRepository) ListDueBetween(ctx context.Context, statuses []domain.CampaignStatus, from, to time.Time) ([]*domain.Campaign, error) {
	queryBuilder := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"status": statuses}).
		Where(squirrel.GtOrEq{"deadline_date": from}).
		Where(squirrel.LtOrEq{"deadline_date": to}).
		OrderBy("deadline_date ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryCampaigns(ctx, queryBuilder)
}

func (r *campaignRepository) ListOverdue(ctx context.Context, statuses []domain.CampaignStatus, now time.Time) ([]*domain.Campaign, error) {
	queryBuilder := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"status": statuses}).
		Where(squirrel.Lt{"deadline_date": now}).
		OrderBy("deadline_date ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryCampaigns(ctx, queryBuilder)
}

func (r *campaignRepository) ListReviewedBefore(ctx context.Context, before time.Time) ([]*domain.Campaign, error) {
	queryBuilder := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"status": domain.CampaignStatusReviewed}).
		Where(squirrel.LtOrEq{"updated_at": before}).
		OrderBy("updated_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryCampaigns(ctx, queryBuilder)
}

func (r *campaignRepository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, squirrel.Select("COUNT(*)").From(campaignsTable))
}

func (r *campaignRepository) CountByStatus(ctx context.Context, statuses ...domain.CampaignStatus) (int, error) {
	return r.count(ctx, squirrel.
		Select("COUNT(*)").
		From(campaignsTable).
		Where(squirrel.Eq{"status": statuses}))
}

func (r *campaignRepository) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	return r.count(ctx, squirrel.
		Select("COUNT(*)").
		From(campaignsTable).
		Where(squirrel.Eq{"status": domain.CampaignStatusRunning}).
		Where(squirrel.Lt{"deadline_date": now}))
}

func (r *campaignRepository) count(ctx context.Context, queryBuilder squirrel.SelectBuilder) (int, error) {
	countSQL, countArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.conn.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar campanhas: %w", err)
	}

	return total, nil
}

func (r *campaignRepository) queryCampaigns(ctx context.Context, queryBuilder squirrel.SelectBuilder) ([]*domain.Campaign, error) {
	campaignsSQL, campaignsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, campaignsSQL, campaignsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)

	for rows.Next() {
		campaign, err := deserializeCampaignRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar a campanha: %w", err)
		}

		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return campaigns, nil
}

func deserializeCampaignRow(scan func(dest ...interface{}) error) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}

	if err := scan(
		&campaign.ID,
		&campaign.AdvertiserID,
		&campaign.Title,
		&campaign.Status,
		&campaign.EstimatedDuration,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
		&campaign.OpenedAt,
		&campaign.CompletedAt,
		&campaign.DeadlineDate,
	); err != nil {
		return nil, err
	}

	return campaign, nil
}
