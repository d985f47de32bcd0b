package dto

// MessageResponse is the body of endpoints that only report a status message
type MessageResponse struct {
	Message string `json:"message" example:"Backend is working!"`
}

// BulkDeleteCodesRequest lists college or program codes to delete
type BulkDeleteCodesRequest struct {
	Codes []string `json:"codes"`
}

// BulkDeleteIDsRequest lists student ids to delete
type BulkDeleteIDsRequest struct {
	IDs []string `json:"ids"`
}

// BulkDeleteResponse reports how many rows were actually removed
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted" example:"2"`
}
