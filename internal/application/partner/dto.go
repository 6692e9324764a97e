package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/partner"
	"github.com/grafica/backend/internal/domain/shared"
)

// PartyRequest represents a request to create or replace a client or supplier
type PartyRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Document string `json:"document" binding:"max=20"`
	Email    string `json:"email" binding:"omitempty,email,max=200"`
	Phone    string `json:"phone" binding:"max=30"`
	Address  string `json:"address" binding:"max=500"`
	Notes    string `json:"notes" binding:"max=2000"`
}

// UpdatePartyRequest replaces a party; Version makes the write conditional
type UpdatePartyRequest struct {
	PartyRequest
	Version *int `json:"version"`
}

// PartyListFilter represents filter options for client and supplier lists
type PartyListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PartyResponse represents a client or supplier in API responses
type PartyResponse struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	Document  string    `json:"document,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToPartyResponse converts a domain party
func ToPartyResponse(p *partner.Party) PartyResponse {
	return PartyResponse{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Name:      p.Name,
		Document:  p.Document,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Version:   p.Version,
	}
}

func (r PartyRequest) toDetails() partner.Details {
	return partner.Details{
		Name:     r.Name,
		Document: r.Document,
		Email:    r.Email,
		Phone:    r.Phone,
		Address:  r.Address,
		Notes:    r.Notes,
	}
}

func (f PartyListFilter) toDomain() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = f.Search
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	return filter
}
