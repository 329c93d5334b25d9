package domain

// DummyProductID marks the zero-price sentinel used to pad a catalog snapshot.
const DummyProductID int64 = -1

// Product is a catalog record as served by the catalog service.
//
// CREATE TABLE public.products (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_name     TEXT,
//     product_category TEXT,
//     brand            TEXT,
//     unit             TEXT,
//     price_per_unit   NUMERIC,
//     tags             TEXT,  -- "|" separated
//     meal_components  TEXT,  -- "|" separated, ordered
//     embedding        BYTEA  -- little-endian float32
// );
type Product struct {
	ID             int64     `json:"id"`
	Name           string    `json:"product_name"`
	Category       string    `json:"product_category"`
	Brand          string    `json:"brand"`
	PricePerUnit   float64   `json:"price_per_unit"`
	Unit           string    `json:"unit"`
	Tags           []string  `json:"tags"`
	MealComponents []string  `json:"meal_components"`
	Embedding      []float32 `json:"embedding,omitempty"`
}

// DummyProduct returns a padding sentinel. Its zero price keeps it out of any cart.
func DummyProduct() Product {
	return Product{
		ID:             DummyProductID,
		Name:           "DUMMY",
		Category:       "DUMMY",
		Brand:          "DUMMY",
		Unit:           "pcs",
		Tags:           []string{},
		MealComponents: []string{},
	}
}

func (p Product) IsDummy() bool {
	return p.PricePerUnit <= 0
}

// HasAnyTag reports whether at least one product tag is in set.
func (p Product) HasAnyTag(set map[string]struct{}) bool {
	if len(set) == 0 {
		return false
	}
	for _, t := range p.Tags {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// PrimaryMealComponent is the first meal-component label, or "" when there is none.
func (p Product) PrimaryMealComponent() string {
	if len(p.MealComponents) == 0 {
		return ""
	}
	return p.MealComponents[0]
}
