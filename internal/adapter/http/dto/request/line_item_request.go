package request

import (
	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase"
)

// LineItemRequest is shared by estimate and invoice payloads.
type LineItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Kind        string  `json:"kind" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required"`
	UnitPrice   float64 `json:"unit_price"`
	Discount    float64 `json:"discount"`
}

func (r LineItemRequest) ToInput() usecase.LineItemInput {
	return usecase.LineItemInput{
		Description: r.Description,
		Kind:        entities.LineItemKind(r.Kind),
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		Discount:    r.Discount,
	}
}

func toLineItemInputs(items []LineItemRequest) []usecase.LineItemInput {
	if len(items) == 0 {
		return nil
	}
	out := make([]usecase.LineItemInput, 0, len(items))
	for _, li := range items {
		out = append(out, li.ToInput())
	}
	return out
}
