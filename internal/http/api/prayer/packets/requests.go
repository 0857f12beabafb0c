package packets

type UpdateConventionRequest struct {
	Convention string `json:"convention" binding:"required"`
}

type ManualLocationRequest struct {
	Query string `json:"query" binding:"required"`
}

type AutoDetectRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}
