package domain

// Product is a catalog entry keyed by SKU.
type Product struct {
	SKU           string  `json:"SKU"`
	DisplayName   string  `json:"displayName"`
	Model         string  `json:"product_model"`
	Manufacturer  string  `json:"manufacturer"`
	Image         string  `json:"image"`
	ListPrice     float64 `json:"list_price"`
	SellingPrice  float64 `json:"selling_price,omitempty"`
	StockQuantity int     `json:"stock_quantity"`
	Supplier      string  `json:"supplier"`
	Category      string  `json:"category,omitempty"`
	Description   string  `json:"description,omitempty"`
}

// Category groups catalog entries under a URL slug.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Image        string `json:"image,omitempty"`
	ProductCount int    `json:"productCount,omitempty"`
}
