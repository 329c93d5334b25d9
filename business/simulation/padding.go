package simulation

import "basketDebate/domain"

// PadProducts returns exactly k products: the first k of products, followed by
// dummy sentinels when there are fewer. The action space over the result is
// always k+1 wide.
func PadProducts(products []domain.Product, k int) []domain.Product {
	if k <= 0 {
		return []domain.Product{}
	}
	if len(products) >= k {
		out := make([]domain.Product, k)
		copy(out, products[:k])
		return out
	}

	out := make([]domain.Product, 0, k)
	out = append(out, products...)
	for len(out) < k {
		out = append(out, domain.DummyProduct())
	}
	return out
}
