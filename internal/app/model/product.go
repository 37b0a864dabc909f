package model

// CategoryAll is the wildcard category that matches every product.
const CategoryAll = "all"

// Rating is the aggregate review score carried by the product feed.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a read-only record from the external product feed. Products are
// immutable once fetched and owned by the catalog snapshot they arrived in.
type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
	Rating   *Rating `json:"rating,omitempty"`
}
