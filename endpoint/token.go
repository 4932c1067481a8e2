package endpoint

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/telerehab/dashboard-api/config"
	"github.com/telerehab/dashboard-api/util"
)

const sessionTokenTTL = time.Hour

type issueTokenRequest struct {
	APIToken string `json:"api_token" binding:"required"`
}

type issueTokenResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn int64  `json:"expires_in" example:"3600"`
}

// IssueToken godoc
// @Summary      Issue a session token
// @Description  Exchange the configured API token for a short-lived session token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body issueTokenRequest true "API token"
// @Success      200 {object} util.APIResponse{data=issueTokenResponse} "Token issued"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      401 {object} util.APIResponse "Wrong API token"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /token [post]
func IssueToken(c *gin.Context) {
	var req issueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request payload",
			Err: err,
		})
		return
	}

	cfg := config.LoadConfig()
	if cfg.APIToken == "" || req.APIToken != cfg.APIToken {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Wrong API token",
			Err: fmt.Errorf("api token mismatch"),
		})
		return
	}

	token, err := util.IssueSessionToken(sessionTokenTTL)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Could not generate token",
			Err: err,
		})
		return
	}

	recordIssuedToken(c.Request.Context(), token)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Token issued",
		Data: issueTokenResponse{
			Token:     token,
			ExpiresIn: int64(sessionTokenTTL.Seconds()),
		},
	})
}

// recordIssuedToken caches the token in Redis for observability.
// Best-effort: a missing or failing Redis never blocks token issuance.
func recordIssuedToken(ctx context.Context, token string) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return
	}
	if err := rdb.Set(ctx, "session:"+token, time.Now().Format(time.RFC3339), sessionTokenTTL).Err(); err != nil {
		log.Printf("failed to record session token: %v", err)
	}
}

// ValidateToken godoc
// @Summary      Validate session token
// @Description  Validate if the session token is valid and not expired
// @Tags         Authentication
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse "Valid session token"
// @Failure      401 {object} util.APIResponse "Invalid or expired session token"
// @Router       /token/validate [get]
func ValidateToken(c *gin.Context) {
	sessionToken := c.GetHeader("session-token")
	if sessionToken == "" {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Missing session token",
			Err: fmt.Errorf("session-token header is required"),
		})
		return
	}

	if err := util.ParseSessionToken(sessionToken); err != nil {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Invalid or expired session token",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Valid session token",
	})
}
