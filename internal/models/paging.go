package models

// Paging carries page metadata alongside a slice of results.
//
// TotalPages is total/pageSize with truncating division, so a partially
// filled final page is not counted. This mirrors the catalog API this
// service replaces; fixing it would change responses consumers rely on.
type Paging struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

// ProductListResponse is the paging envelope for catalog listings.
type ProductListResponse struct {
	Paging Paging     `json:"paging"`
	Data   []*Product `json:"data"`
}
