package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"auction-engine/internal/biddingerrors"
	"auction-engine/utils"
)

// UserIDHeader carries the caller identity set by the auth gateway
const UserIDHeader = "X-User-ID"

const userIDKey = "user_id"

var errUnauthenticated = errors.New("missing " + UserIDHeader + " header")

// RequireUser rejects requests that carry no authenticated identity
func RequireUser(c *gin.Context) {
	userID := c.GetHeader(UserIDHeader)
	if userID == "" {
		utils.AbortJSONError(c, http.StatusUnauthorized, errUnauthenticated, "authentication required")
		return
	}
	c.Set(userIDKey, userID)
	c.Next()
}

// CurrentUserID returns the identity stored by RequireUser
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, biddingerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for product"
	case errors.Is(err, biddingerrors.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		return http.StatusBadRequest, "bid amount too low"
	case errors.Is(err, biddingerrors.ErrMaxAmountTooLow):
		return http.StatusBadRequest, "auto-bid ceiling too low"
	case errors.Is(err, biddingerrors.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, biddingerrors.ErrAuctionEnded), errors.Is(err, biddingerrors.ErrAuctionNotActive):
		return http.StatusConflict, "auction is not accepting bids"
	case errors.Is(err, biddingerrors.ErrInvalidState):
		return http.StatusConflict, "invalid state"
	case errors.Is(err, biddingerrors.ErrRatingTooLow):
		return http.StatusForbidden, "bidder rating too low"
	case errors.Is(err, biddingerrors.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
