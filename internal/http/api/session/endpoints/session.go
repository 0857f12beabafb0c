package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/miqat/internal/http/api"
	"github.com/miqat-labs/miqat/internal/http/api/session/packets"
	"github.com/miqat-labs/miqat/internal/http/middleware"
)

type SessionController struct {
	secretKey     string
	accessKeyHash string
}

// SessionModule mounts the public token-issuing endpoint. Clients present
// the shared access key and receive a JWT for the mutating routes.
func SessionModule(secretKey, accessKeyHash string) api.Module {
	ctl := &SessionController{secretKey: secretKey, accessKeyHash: accessKeyHash}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("", ctl.createSession)
	})
}

// POST /api/session
func (s *SessionController) createSession(ctx *gin.Context) (any, *api.APIError) {
	var request packets.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if !middleware.CheckAccessKey(s.accessKeyHash, request.AccessKey) {
		log.Warn().Str("client_id", request.ClientID).Msg("rejected session request")
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidAccessKey.Error()}
	}

	token, err := middleware.GenerateJWT(request.ClientID, s.secretKey)
	if err != nil {
		log.Error().Err(err).Msg("failed to sign session token")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create session"}
	}

	return gin.H{"token": token}, nil
}
