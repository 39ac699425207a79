package entities

// LineItemKind classifies a priced unit on an estimate or invoice.

type LineItemKind string

const (
	LineItemKindPart    LineItemKind = "part"
	LineItemKindLabour  LineItemKind = "labour"
	LineItemKindService LineItemKind = "service"
	LineItemKindMisc    LineItemKind = "misc"
)

func (k LineItemKind) Valid() bool {
	switch k {
	case LineItemKindPart, LineItemKindLabour, LineItemKindService, LineItemKindMisc:
		return true
	}
	return false
}

// LineItem is a priced unit contributing to a document subtotal.
//
// Total is always derived as quantity*unit_price - discount and recomputed
// before every save; a discount larger than the line subtotal yields a
// negative total on purpose (callers decide whether to allow it).

type LineItem struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Kind        LineItemKind `json:"kind"`
	Quantity    float64      `json:"quantity"`
	UnitPrice   float64      `json:"unit_price"`
	Discount    float64      `json:"discount"`
	Total       float64      `json:"total"`
}
