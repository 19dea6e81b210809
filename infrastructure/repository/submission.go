package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-hub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
)

const submissionsTable = "submissions"

// ReviewSubmissionParams descreve o veredito de revisão de uma entrega.
// ApprovedAt só é preenchido na aprovação e Feedback só no pedido de ajuste
type ReviewSubmissionParams struct {
	CampaignID   string
	SubmissionID string
	Status       domain.SubmissionStatus
	ApprovedAt   *time.Time
	Feedback     *string
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.Submission, event *domain.Event) error
	GetByID(ctx context.Context, campaignID, submissionID string) (*domain.Submission, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Submission, error)
	Review(ctx context.Context, params ReviewSubmissionParams, event *domain.Event) error
	HasApprovedByInfluencer(ctx context.Context, campaignID, influencerID string) (bool, error)
}

type submissionRepository struct {
	conn *postgres.Connection
}

func NewSubmissionRepository(conn *postgres.Connection) SubmissionRepository {
	return &submissionRepository{
		conn: conn,
	}
}

const submissionColumns = "id, campaign_id, application_id, influencer_id, post_url, screenshot_urls, metrics, status, submitted_at, updated_at, approved_at, feedback"

func (r *submissionRepository) Create(ctx context.Context, submission *domain.Submission, event *domain.Event) error {
	metricsJSON, err := json.Marshal(submission.Metrics)
	if err != nil {
		return fmt.Errorf("erro ao serializar as métricas: %w", err)
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		submissionSQL, submissionArgs, err := squirrel.
			Insert(submissionsTable).
			Columns("id", "campaign_id", "application_id", "influencer_id", "post_url",
				"screenshot_urls", "metrics", "status", "submitted_at", "updated_at",
				"approved_at", "feedback").
			Values(submission.ID, submission.CampaignID, submission.ApplicationID,
				submission.InfluencerID, submission.PostURL, pq.Array(submission.ScreenshotURLs),
				metricsJSON, submission.Status, submission.SubmittedAt, submission.UpdatedAt,
				submission.ApprovedAt, submission.Feedback).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, submissionSQL, submissionArgs...); err != nil {
			return fmt.Errorf("erro ao criar entrega: %w", err)
		}

		return insertEventTx(ctx, tx, event)
	})
}

func (r *submissionRepository) GetByID(ctx context.Context, campaignID, submissionID string) (*domain.Submission, error) {
	submissionSQL, submissionArgs, err := squirrel.
		Select(submissionColumns).
		From(submissionsTable).
		Where(squirrel.Eq{"id": submissionID, "campaign_id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(ctx, submissionSQL, submissionArgs...)

	submission, err := deserializeSubmissionRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return submission, nil
}

func (r *submissionRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Submission, error) {
	submissionsSQL, submissionsArgs, err := squirrel.
		Select(submissionColumns).
		From(submissionsTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("submitted_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, submissionsSQL, submissionsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	submissions := make([]*domain.Submission, 0)

	for rows.Next() {
		submission, err := deserializeSubmissionRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar a entrega: %w", err)
		}

		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return submissions, nil
}

// Review grava o veredito condicionalmente e registra o evento na mesma
// transação. Entregas já aprovadas são imutáveis: zero linhas afetadas com a
// entrega existente significa revisão tardia (ErrStaleStatus)
func (r *submissionRepository) Review(ctx context.Context, params ReviewSubmissionParams, event *domain.Event) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		queryBuilder := squirrel.
			Update(submissionsTable).
			Set("status", params.Status).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": params.SubmissionID, "campaign_id": params.CampaignID}).
			Where(squirrel.NotEq{"status": domain.SubmissionStatusApproved}).
			PlaceholderFormat(squirrel.Dollar)

		// Atualização parcial: aprovação não toca o feedback existente e
		// pedido de ajuste não toca approved_at
		if params.ApprovedAt != nil {
			queryBuilder = queryBuilder.Set("approved_at", params.ApprovedAt)
		}

		if params.Feedback != nil {
			queryBuilder = queryBuilder.Set("feedback", params.Feedback)
		}

		updateSQL, updateArgs, err := queryBuilder.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		result, err := tx.ExecContext(ctx, updateSQL, updateArgs...)
		if err != nil {
			return fmt.Errorf("erro ao revisar entrega: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}

		if affected == 0 {
			return r.classifyMissedReview(ctx, tx, params.CampaignID, params.SubmissionID)
		}

		return insertEventTx(ctx, tx, event)
	})
}

func (r *submissionRepository) classifyMissedReview(ctx context.Context, tx *sql.Tx, campaignID, submissionID string) error {
	statusSQL, statusArgs, err := squirrel.
		Select("status").
		From(submissionsTable).
		Where(squirrel.Eq{"id": submissionID, "campaign_id": campaignID}).
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

// HasApprovedByInfluencer indica se o influenciador tem ao menos uma entrega
// aprovada na campanha. Usado para decidir a conclusão automática
func (r *submissionRepository) HasApprovedByInfluencer(ctx context.Context, campaignID, influencerID string) (bool, error) {
	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(submissionsTable).
		Where(squirrel.Eq{
			"campaign_id":   campaignID,
			"influencer_id": influencerID,
			"status":        domain.SubmissionStatusApproved,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	var total int
	if err := r.conn.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return false, fmt.Errorf("erro ao contar entregas aprovadas: %w", err)
	}

	return total > 0, nil
}

func deserializeSubmissionRow(scan func(dest ...interface{}) error) (*domain.Submission, error) {
	submission := &domain.Submission{}

	var metricsJSON []byte

	if err := scan(
		&submission.ID,
		&submission.CampaignID,
		&submission.ApplicationID,
		&submission.InfluencerID,
		&submission.PostURL,
		pq.Array(&submission.ScreenshotURLs),
		&metricsJSON,
		&submission.Status,
		&submission.SubmittedAt,
		&submission.UpdatedAt,
		&submission.ApprovedAt,
		&submission.Feedback,
	); err != nil {
		return nil, err
	}

	if len(metricsJSON) > 0 {
		if err := json.Unmarshal(metricsJSON, &submission.Metrics); err != nil {
			return nil, fmt.Errorf("erro ao deserializar as métricas: %w", err)
		}
	}

	return submission, nil
}
