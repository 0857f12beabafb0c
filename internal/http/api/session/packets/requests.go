package packets

type CreateSessionRequest struct {
	ClientID  string `json:"client_id" binding:"required"`
	AccessKey string `json:"access_key" binding:"required"`
}
