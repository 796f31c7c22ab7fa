package dto

import (
	"time"

	"github.com/festarent/rental_mgmt_app/internal/core/domain"
)

// CreateClientRequest registers a new rental client.
type CreateClientRequest struct {
	Name       string `json:"name" binding:"required,max=200"`
	DocumentID string `json:"documentID" binding:"max=64"`
	Phone      string `json:"phone" binding:"max=32"`
	Email      string `json:"email" binding:"omitempty,email"`
	Notes      string `json:"notes" binding:"max=2000"`
}

// UpdateClientRequest patches client fields; nil means leave unchanged.
type UpdateClientRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,max=200"`
	DocumentID *string `json:"documentID,omitempty" binding:"omitempty,max=64"`
	Phone      *string `json:"phone,omitempty" binding:"omitempty,max=32"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	Notes      *string `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

// ListClientsParams carries pagination for client listings.
type ListClientsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ClientResponse is the API shape of a client.
type ClientResponse struct {
	ClientID   string    `json:"clientID"`
	Name       string    `json:"name"`
	DocumentID string    `json:"documentID,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListClientsResponse is a page of clients plus the next token.
type ListClientsResponse struct {
	Clients   []ClientResponse `json:"clients"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToClientResponse maps a domain client to its API shape.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:   c.ClientID,
		Name:       c.Name,
		DocumentID: c.DocumentID,
		Phone:      c.Phone,
		Email:      c.Email,
		Notes:      c.Notes,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
	}
}
