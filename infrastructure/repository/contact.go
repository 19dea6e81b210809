package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-hub-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-hub-api/internal/domain"
)

const contactsTable = "contacts"

type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	List(ctx context.Context, status domain.ContactStatus) ([]*domain.Contact, error)
	UpdateStatus(ctx context.Context, contactID string, status domain.ContactStatus) error
}

type contactRepository struct {
	conn *postgres.Connection
}

func NewContactRepository(conn *postgres.Connection) ContactRepository {
	return &contactRepository{
		conn: conn,
	}
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	contactSQL, contactArgs, err := squirrel.
		Insert(contactsTable).
		Columns("id", "name", "email", "message", "status", "created_at", "updated_at").
		Values(contact.ID, contact.Name, contact.Email, contact.Message,
			contact.Status, contact.CreatedAt, contact.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, contactSQL, contactArgs...); err != nil {
		return fmt.Errorf("erro ao criar contato: %w", err)
	}

	return nil
}

func (r *contactRepository) UpdateStatus(ctx context.Context, contactID string, status domain.ContactStatus) error {
	updateSQL, updateArgs, err := squirrel.
		Update(contactsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": contactID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, updateSQL, updateArgs...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar contato: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *contactRepository) List(ctx context.Context, status domain.ContactStatus) ([]*domain.Contact, error) {
	queryBuilder := squirrel.
		Select("id", "name", "email", "message", "status", "created_at", "updated_at").
		From(contactsTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if status != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": status})
	}

	contactsSQL, contactsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, contactsSQL, contactsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	contacts := make([]*domain.Contact, 0)

	for rows.Next() {
		contact := &domain.Contact{}

		if err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Email,
			&contact.Message,
			&contact.Status,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o contato: %w", err)
		}

		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return contacts, nil
}
