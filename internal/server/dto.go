package server

// Request bodies use pointer fields so that missing and zero-valued inputs
// can be told apart during validation. Field names mirror the public API
// contract (snake_case).

type publishRequest struct {
	ServiceDescr *serviceDescriptor `json:"service_descr"`
	AssetDescr   *assetDescriptor   `json:"asset_descr"`
}

type serviceDescriptor struct {
	URL     *string `json:"url"`
	APIKey  *string `json:"api_key"`
	DataKey *string `json:"data_key"`
	// Timeout defaults to 0 (unlimited) when omitted.
	Timeout *int `json:"timeout"`
}

type assetDescriptor struct {
	Name        *string          `json:"name"`
	Type        *string          `json:"type"`
	Description *string          `json:"description"`
	Author      *string          `json:"author"`
	License     *string          `json:"license"`
	Price       *priceDescriptor `json:"price"`
}

type priceDescriptor struct {
	Value    *float64 `json:"value"`
	Currency *string  `json:"currency"`
}

type updatePriceRequest struct {
	Price *float64 `json:"price"`
}

type errorResponse struct {
	// Error is either a field→message map (validation failures) or a
	// single message string (unknown currency fast-fail).
	Error any `json:"error"`
}

type publishResponse struct {
	AssetDID string `json:"assetdid"`
}

type resultResponse struct {
	Result string `json:"result"`
}

type urlResponse struct {
	URL string `json:"url"`
}

type healthResponse struct {
	Status string `json:"status"`
}
