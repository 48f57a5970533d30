package catalogservice

import "github.com/funpark/TicketingService/internal/domain"

// Attraction модель аттракциона из CatalogService
type Attraction struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Capacity  int     `json:"capacity"`
	BasePrice float64 `json:"base_price"`
	Active    bool    `json:"active"`
}

// Combo модель комбо-набора из CatalogService
type Combo struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Capacity      int     `json:"capacity"`
	BasePrice     float64 `json:"base_price"`
	AttractionIDs []int64 `json:"attraction_ids"`
	Active        bool    `json:"active"`
}

// Entity обобщённое представление бронируемой сущности (аттракцион или комбо)
type Entity struct {
	Type          domain.EntityType `json:"type"`
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Capacity      int               `json:"capacity"`
	BasePrice     float64           `json:"base_price"`
	AttractionIDs []int64           `json:"attraction_ids,omitempty"` // только для комбо
}

// SlotDurationHours длительность слота сущности:
// 1 час для аттракциона, max(1, количество аттракционов) для комбо
func (e *Entity) SlotDurationHours() int {
	if e.Type == domain.EntityTypeCombo {
		if n := len(e.AttractionIDs); n > 1 {
			return n
		}
	}
	return 1
}

func entityFromAttraction(a *Attraction) *Entity {
	return &Entity{
		Type:      domain.EntityTypeAttraction,
		ID:        a.ID,
		Name:      a.Name,
		Capacity:  a.Capacity,
		BasePrice: a.BasePrice,
	}
}

func entityFromCombo(c *Combo) *Entity {
	return &Entity{
		Type:          domain.EntityTypeCombo,
		ID:            c.ID,
		Name:          c.Name,
		Capacity:      c.Capacity,
		BasePrice:     c.BasePrice,
		AttractionIDs: c.AttractionIDs,
	}
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
