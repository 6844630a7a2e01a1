package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/modules/serializer"
	"github.com/taskboard/taskboard/internal/pkg/errs"
	"github.com/taskboard/taskboard/internal/pkg/tokens"
)

// UserLoader resolves the subject of a verified token.
type UserLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// BearerOrCookie extracts the raw access token, preferring the Authorization header.
func BearerOrCookie(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if raw, err := c.Cookie(tokens.AccessCookie); err == nil {
		return raw
	}
	return ""
}

// UserAuth returns a middleware that authenticates requests using access tokens.
// The token may come from the Authorization header or the access_token cookie.
// Revoked tokens and inactive users are rejected. The user is set in the context
// under "user" and its id on the current span.
func UserAuth(issuer *tokens.Issuer, revoker tokens.Revoker, users UserLoader, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := BearerOrCookie(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.CheckLogin())
			return
		}

		claims, err := issuer.Parse(raw, tokens.Access)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.Sugar().Errorw("revocation lookup failed", "jti", claims.ID, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "token check failed", err))
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		uid, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		user, err := users.GetByID(c.Request.Context(), uid)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("account disabled"))
			return
		}

		// Set user_id attribute on the current span for telemetry filtering
		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			span.SetAttributes(attribute.String("user_id", user.ID.String()))
		}

		c.Set("user", user)
		c.Set("claims", claims)
		c.Next()
	}
}
