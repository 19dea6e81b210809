package domain

import "time"

// ContactStatus representa o estado de tratamento de uma mensagem de contato
type ContactStatus string

const (
	ContactStatusPending   ContactStatus = "PENDING"
	ContactStatusResponded ContactStatus = "RESPONDED"
	ContactStatusClosed    ContactStatus = "CLOSED"
)

func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactStatusPending, ContactStatusResponded, ContactStatusClosed:
		return true
	}
	return false
}

type Contact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
