package response

import "autoshop/internal/domain/entities"

type LineItemResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Kind        string  `json:"kind"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

func fromLineItems(items []entities.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, li := range items {
		out = append(out, LineItemResponse{
			ID:          li.ID,
			Description: li.Description,
			Kind:        string(li.Kind),
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Discount:    li.Discount,
			Total:       li.Total,
		})
	}
	return out
}
