package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/campaign-hub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
)

const eventsTable = "events"

type EventRepository interface {
	Append(ctx context.Context, event *domain.Event) error
	ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Event, error)
}

type eventRepository struct {
	conn *postgres.Connection
}

func NewEventRepository(conn *postgres.Connection) EventRepository {
	return &eventRepository{
		conn: conn,
	}
}

// buildEventInsert monta o INSERT de um evento. O payload é serializado como
// JSONB; eventos nunca são atualizados nem removidos depois de escritos
func buildEventInsert(event *domain.Event) (string, []interface{}, error) {
	var payload []byte
	if event.Payload != nil {
		serialized, err := json.Marshal(event.Payload)
		if err != nil {
			return "", nil, fmt.Errorf("erro ao serializar payload do evento: %w", err)
		}
		payload = serialized
	}

	return squirrel.
		Insert(eventsTable).
		Columns("id", "campaign_id", "actor_id", "actor_role", "type", "payload", "created_at").
		Values(event.ID, event.CampaignID, event.ActorID, event.ActorRole, event.Type, payload, event.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// insertEventTx grava o evento dentro da transação da escrita que o originou,
// garantindo que mutação e auditoria sejam confirmadas juntas
func insertEventTx(ctx context.Context, tx *sql.Tx, event *domain.Event) error {
	eventSQL, eventArgs, err := buildEventInsert(event)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, eventSQL, eventArgs...); err != nil {
		return fmt.Errorf("erro ao registrar evento: %w", err)
	}

	return nil
}

func (r *eventRepository) Append(ctx context.Context, event *domain.Event) error {
	eventSQL, eventArgs, err := buildEventInsert(event)
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(ctx, eventSQL, eventArgs...); err != nil {
		return fmt.Errorf("erro ao registrar evento: %w", err)
	}

	return nil
}

func (r *eventRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Event, error) {
	eventsSQL, eventsArgs, err := squirrel.
		Select("id", "campaign_id", "actor_id", "actor_role", "type", "payload", "created_at").
		From(eventsTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ctx, eventsSQL, eventsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)

	for rows.Next() {
		event := &domain.Event{}
		var payload []byte

		if err := rows.Scan(
			&event.ID,
			&event.CampaignID,
			&event.ActorID,
			&event.ActorRole,
			&event.Type,
			&payload,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar evento: %w", err)
		}

		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &event.Payload); err != nil {
				return nil, fmt.Errorf("erro ao deserializar payload do evento: %w", err)
			}
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os eventos: %w", err)
	}

	return events, nil
}
