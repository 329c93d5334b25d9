package domain

// BasketItem is one basket line in canonical form: the unit price, quantity and
// total are always populated, whatever the upstream producer sent.
type BasketItem struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	PricePerUnit   float64   `json:"price_per_unit"`
	Quantity       float64   `json:"quantity"`
	TotalPrice     float64   `json:"total_price"`
	Unit           string    `json:"unit"`
	MealComponents []string  `json:"meal_components"`
	Embedding      []float32 `json:"embedding,omitempty"`
	Tags           []string  `json:"tags"`
}

// RawBasketItem is the wire form of a basket line. Producers (scenario
// matching, policy replay, API callers) populate different price fields.
type RawBasketItem struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	ProductName    string    `json:"product_name"`
	Category       string    `json:"category"`
	Price          *float64  `json:"price"`
	PricePerUnit   *float64  `json:"price_per_unit"`
	TotalPrice     *float64  `json:"total_price"`
	Quantity       *float64  `json:"quantity"`
	Unit           string    `json:"unit"`
	MealComponents []string  `json:"meal_components"`
	Embedding      []float64 `json:"embedding"`
	Tags           []string  `json:"tags"`
}

// NormalizeBasketItem resolves the price fields of a raw item once.
// Unit price comes from price_per_unit, then price, then total_price/quantity.
// The total is total_price when given, otherwise unit price times quantity.
// A missing quantity counts as 1.
func NormalizeBasketItem(raw RawBasketItem) BasketItem {
	qty := 1.0
	if raw.Quantity != nil {
		qty = *raw.Quantity
	}

	var unit float64
	switch {
	case raw.PricePerUnit != nil:
		unit = *raw.PricePerUnit
	case raw.Price != nil:
		unit = *raw.Price
	case raw.TotalPrice != nil && qty > 0:
		unit = *raw.TotalPrice / qty
	}

	total := unit * qty
	if raw.TotalPrice != nil {
		total = *raw.TotalPrice
	}

	name := raw.Name
	if name == "" {
		name = raw.ProductName
	}

	var emb []float32
	if raw.Embedding != nil {
		emb = make([]float32, len(raw.Embedding))
		for i, v := range raw.Embedding {
			emb[i] = float32(v)
		}
	}

	return BasketItem{
		ID:             raw.ID,
		Name:           name,
		Category:       raw.Category,
		PricePerUnit:   unit,
		Quantity:       qty,
		TotalPrice:     total,
		Unit:           raw.Unit,
		MealComponents: raw.MealComponents,
		Embedding:      emb,
		Tags:           raw.Tags,
	}
}

// NormalizeBasket normalizes every raw item of a basket.
func NormalizeBasket(raw []RawBasketItem) []BasketItem {
	out := make([]BasketItem, 0, len(raw))
	for _, r := range raw {
		out = append(out, NormalizeBasketItem(r))
	}
	return out
}

// NewBasketItemFromProduct builds a basket line for qty units of p.
func NewBasketItemFromProduct(p Product, qty float64) BasketItem {
	return BasketItem{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		PricePerUnit:   p.PricePerUnit,
		Quantity:       qty,
		TotalPrice:     p.PricePerUnit * qty,
		Unit:           p.Unit,
		MealComponents: p.MealComponents,
		Embedding:      p.Embedding,
		Tags:           p.Tags,
	}
}

// Replacement records one substitution made by the optimizer.
type Replacement struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Saved    float64 `json:"saved"`
	OldPrice float64 `json:"old_price"`
	NewPrice float64 `json:"new_price"`
	Quantity float64 `json:"quantity"`
}

// OptimizeResult is what the optimizer hands back; it is never an error.
type OptimizeResult struct {
	Basket       []BasketItem  `json:"basket"`
	TotalPrice   float64       `json:"total_price"`
	Saved        float64       `json:"saved"`
	Replacements []Replacement `json:"replacements"`
	WithinBudget bool          `json:"within_budget"`
	Optimized    bool          `json:"optimized"`
	Errors       []string      `json:"errors,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
	Message      string        `json:"message"`
}

// ValidationReport lists basket problems found before optimization.
type ValidationReport struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// BudgetCheck compares a basket total against a budget without optimizing.
type BudgetCheck struct {
	Total     float64 `json:"total"`
	Budget    float64 `json:"budget"`
	Fits      bool    `json:"fits"`
	Overspend float64 `json:"overspend"`
}
