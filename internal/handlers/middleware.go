package handlers

import (
	"net/http"
	"strings"

	"photochat/internal/errs"
	"photochat/internal/identity"
	"photochat/internal/models"
	"photochat/internal/msgs"
	"photochat/internal/utils"

	"github.com/gin-gonic/gin"
)

// MustAuthenticateMiddleware accepts either a Bearer JWT (account variant) or an
// X-Device-ID header carrying a device-generated identifier (device variant) and
// stores the resolved user id on the request context.
func (rh *RestHandler) MustAuthenticateMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		jwtToken := ctx.GetHeader("Authorization")
		if jwtToken != "" {
			jwtToken = strings.TrimPrefix(jwtToken, "Bearer ")

			claims, err := utils.VerifyToken(jwtToken, rh.authService.JwtKey())
			if err != nil {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
					Success: false,
					Message: msgs.MsgYouMustLoginFirst,
					Errors:  models.ErrorStrings([]error{errs.ErrUnauthorized}),
				})
				return
			}

			ctx.Set("user_id", claims.ID)
			ctx.Set("user_email", claims.Email)
			ctx.Set("user_username", claims.Username)
			ctx.Next()
			return
		}

		// Browsers cannot set headers on websocket upgrades, so the device id
		// is also accepted as a query parameter there.
		deviceID := ctx.GetHeader("X-Device-ID")
		if deviceID == "" {
			deviceID = ctx.Query("deviceId")
		}
		if identity.IsValid(deviceID) {
			ctx.Set("user_id", deviceID)
			ctx.Next()
			return
		}

		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrUnauthorized}),
		})
	}
}
