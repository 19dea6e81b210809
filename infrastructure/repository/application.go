package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-hub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
)

const applicationsTable = "applications"

// UpdateApplicationStatusParams descreve a decisão condicional sobre uma
// candidatura. A escrita só é aplicada se o status atual for exatamente From
type UpdateApplicationStatusParams struct {
	ID         string
	CampaignID string
	From       domain.ApplicationStatus
	To         domain.ApplicationStatus
	SelectedAt *time.Time
}

type ApplicationRepository interface {
	Create(ctx context.Context, application *domain.Application, event *domain.Event) error
	GetByID(ctx context.Context, campaignID, applicationID string) (*domain.Application, error)
	GetByInfluencer(ctx context.Context, campaignID, influencerID string) (*domain.Application, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Application, error)
	ListByInfluencer(ctx context.Context, influencerID string) ([]*domain.ApplicationWithCampaign, error)
	ListSelectedByCampaign(ctx context.Context, campaignID string) ([]*domain.Application, error)
	UpdateStatus(ctx context.Context, params UpdateApplicationStatusParams, event *domain.Event) error
	Delete(ctx context.Context, campaignID, applicationID string, event *domain.Event) error
}

type applicationRepository struct {
	conn *postgres.Connection
}

func NewApplicationRepository(conn *postgres.Connection) ApplicationRepository {
	return &applicationRepository{
		conn: conn,
	}
}

const applicationColumns = "id, campaign_id, influencer_id, status, message, created_at, updated_at, selected_at"

func (r *applicationRepository) Create(ctx context.Context, application *domain.Application, event *domain.Event) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		applicationSQL, applicationArgs, err := squirrel.
			Insert(applicationsTable).
			Columns("id", "campaign_id", "influencer_id", "status", "message",
				"created_at", "updated_at", "selected_at").
			Values(application.ID, application.CampaignID, application.InfluencerID,
				application.Status, application.Message, application.CreatedAt,
				application.UpdatedAt, application.SelectedAt).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, applicationSQL, applicationArgs...); err != nil {
			return fmt.Errorf("erro ao criar candidatura: %w", err)
		}

		return insertEventTx(ctx, tx, event)
	})
}

func (r *applicationRepository) GetByID(ctx context.Context, campaignID, applicationID string) (*domain.Application, error) {
	return r.getOne(ctx, squirrel.Eq{"id": applicationID, "campaign_id": campaignID})
}

// GetByInfluencer retorna a candidatura do influenciador na campanha,
// independente do status. Usado para barrar candidaturas duplicadas
func (r *applicationRepository) GetByInfluencer(ctx context.Context, campaignID, influencerID string) (*domain.Application, error) {
	return r.getOne(ctx, squirrel.Eq{"campaign_id": campaignID, "influencer_id": influencerID})
}

func (r *applicationRepository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Application, error) {
	applicationSQL, applicationArgs, err := squirrel.
		Select(applicationColumns).
		From(applicationsTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(ctx, applicationSQL, applicationArgs...)

	application, err := deserializeApplicationRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return application, nil
}

func (r *applicationRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Application, error) {
	return r.queryApplications(ctx, squirrel.
		Select(applicationColumns).
		From(applicationsTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar))
}

func (r *applicationRepository) ListSelectedByCampaign(ctx context.Context, campaignID string) ([]*domain.Application, error) {
	return r.queryApplications(ctx, squirrel.
		Select(applicationColumns).
		From(applicationsTable).
		Where(squirrel.Eq{"campaign_id": campaignID, "status": domain.ApplicationStatusSelected}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar))
}

// ListByInfluencer retorna as candidaturas do influenciador com um resumo da
// campanha associada. O join é LEFT para que candidaturas cuja campanha foi
// removida continuem aparecendo, com o resumo nulo
func (r *applicationRepository) ListByInfluencer(ctx context.Context, influencerID string) ([]*domain.ApplicationWithCampaign, error) {
	applicationsSQL, applicationsArgs, err := squirrel.
		Select("a.id", "a.campaign_id", "a.influencer_id", "a.status", "a.message",
			"a.created_at", "a.updated_at", "a.selected_at",
			"c.id", "c.title", "c.status", "c.deadline_date").
		From(applicationsTable + " a").
		LeftJoin(campaignsTable + " c ON c.id = a.campaign_id").
		Where(squirrel.Eq{"a.influencer_id": influencerID}).
		OrderBy("a.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, applicationsSQL, applicationsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	applications := make([]*domain.ApplicationWithCampaign, 0)

	for rows.Next() {
		item := &domain.ApplicationWithCampaign{}

		var campaignID, campaignTitle, campaignStatus sql.NullString
		var campaignDeadline sql.NullTime

		if err := rows.Scan(
			&item.ID,
			&item.CampaignID,
			&item.InfluencerID,
			&item.Status,
			&item.Message,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.SelectedAt,
			&campaignID,
			&campaignTitle,
			&campaignStatus,
			&campaignDeadline,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a candidatura: %w", err)
		}

		if campaignID.Valid {
			item.Campaign = &domain.CampaignSnapshot{
				ID:     campaignID.String,
				Title:  campaignTitle.String,
				Status: domain.CampaignStatus(campaignStatus.String),
			}

			if campaignDeadline.Valid {
				deadline := campaignDeadline.Time
				item.Campaign.Deadline = &deadline
			}
		}

		applications = append(applications, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return applications, nil
}

// UpdateStatus aplica a decisão condicionalmente e registra o evento na mesma
// transação. Zero linhas afetadas significa que a candidatura já foi decidida
// por outra requisição (ErrStaleStatus) ou que não existe (ErrNotFound)
func (r *applicationRepository) UpdateStatus(ctx context.Context, params UpdateApplicationStatusParams, event *domain.Event) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		queryBuilder := squirrel.
			Update(applicationsTable).
			Set("status", params.To).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{
				"id":          params.ID,
				"campaign_id": params.CampaignID,
				"status":      params.From,
			}).
			PlaceholderFormat(squirrel.Dollar)

		if params.SelectedAt != nil {
			queryBuilder = queryBuilder.Set("selected_at", *params.SelectedAt)
		}

		updateSQL, updateArgs, err := queryBuilder.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		result, err := tx.ExecContext(ctx, updateSQL, updateArgs...)
		if err != nil {
			return fmt.Errorf("erro ao atualizar status da candidatura: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}

		if affected == 0 {
			return classifyMissedApplicationWrite(ctx, tx, params.CampaignID, params.ID)
		}

		return insertEventTx(ctx, tx, event)
	})
}

// Delete remove a candidatura apenas enquanto ela não foi selecionada.
// Uma candidatura SELECTED não pode mais ser cancelada pelo influenciador
func (r *applicationRepository) Delete(ctx context.Context, campaignID, applicationID string, event *domain.Event) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		deleteSQL, deleteArgs, err := squirrel.
			Delete(applicationsTable).
			Where(squirrel.Eq{"id": applicationID, "campaign_id": campaignID}).
			Where(squirrel.NotEq{"status": domain.ApplicationStatusSelected}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		result, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...)
		if err != nil {
			return fmt.Errorf("erro ao remover candidatura: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}

		if affected == 0 {
			return classifyMissedApplicationWrite(ctx, tx, campaignID, applicationID)
		}

		return insertEventTx(ctx, tx, event)
	})
}

func classifyMissedApplicationWrite(ctx context.Context, tx *sql.Tx, campaignID, applicationID string) error {
	statusSQL, statusArgs, err := squirrel.
		Select("status").
		From(applicationsTable).
		Where(squirrel.Eq{"id": applicationID, "campaign_id": campaignID}).
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

func (r *applicationRepository) queryApplications(ctx context.Context, queryBuilder squirrel.SelectBuilder) ([]*domain.Application, error) {
	applicationsSQL, applicationsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, applicationsSQL, applicationsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	applications := make([]*domain.Application, 0)

	for rows.Next() {
		application, err := deserializeApplicationRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar a candidatura: %w", err)
		}

		applications = append(applications, application)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return applications, nil
}

func deserializeApplicationRow(scan func(dest ...interface{}) error) (*domain.Application, error) {
	application := &domain.Application{}

	if err := scan(
		&application.ID,
		&application.CampaignID,
		&application.InfluencerID,
		&application.Status,
		&application.Message,
		&application.CreatedAt,
		&application.UpdatedAt,
		&application.SelectedAt,
	); err != nil {
		return nil, err
	}

	return application, nil
}
