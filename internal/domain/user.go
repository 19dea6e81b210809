package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role identifica o papel de um ator autenticado na plataforma
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAdvertiser Role = "advertiser"
	RoleInfluencer Role = "influencer"

	// RoleSystem é usado apenas pelos agendadores internos ao registrar
	// eventos automáticos (lembrete de prazo, transição de status)
	RoleSystem Role = "system"
)

// IsValid verifica se o papel é um dos papéis atribuíveis a usuários
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleAdvertiser || r == RoleInfluencer
}

type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password,omitempty"`
	Role         Role       `json:"role"`
	Active       bool       `json:"active"`
	AvatarURL    *string    `json:"avatar_url,omitempty"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UpdateUserRequest carrega as alterações parciais de um usuário.
// Campos nulos são ignorados
type UpdateUserRequest struct {
	ID        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Active    *bool   `json:"active,omitempty"`
	Role      *Role   `json:"role,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Deleted   *bool   `json:"deleted,omitempty"`
}

// Claims é o par (uid, role) verificado que acompanha cada requisição
type Claims struct {
	UserID    string
	UserName  string
	UserEmail string
	UserRole  Role
	jwt.RegisteredClaims
}

// Actor resume a identidade usada pelas operações do workflow
type Actor struct {
	ID   string
	Role Role
}

// ActorFromClaims converte as claims do token no ator das operações de negócio
func ActorFromClaims(c *Claims) Actor {
	return Actor{ID: c.UserID, Role: c.UserRole}
}
