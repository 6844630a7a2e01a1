package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/modules/serializer"
	"github.com/taskboard/taskboard/internal/modules/service"
	"github.com/taskboard/taskboard/internal/pkg/tokens"
)

type AuthHandler struct {
	svc     service.IdentityService
	issuer  *tokens.Issuer
	revoker tokens.Revoker
	cfg     *config.Config
	log     *zap.Logger
}

func NewAuthHandler(s service.IdentityService, issuer *tokens.Issuer, revoker tokens.Revoker, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: s, issuer: issuer, revoker: revoker, cfg: cfg, log: log}
}

type TokenPair struct {
	Access    string `json:"access"`
	Refresh   string `json:"refresh,omitempty"`
	ExpiresIn int64  `json:"expires_in" example:"3600"`
}

type AuthOut struct {
	User   *model.UserView `json:"user"`
	Tokens TokenPair       `json:"tokens"`
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", h.cfg.Auth.CookieDomain, h.cfg.Auth.CookieSecure, true)
}

func (h *AuthHandler) clearCookies(c *gin.Context) {
	h.setCookie(c, tokens.AccessCookie, "", -time.Second)
	h.setCookie(c, tokens.RefreshCookie, "", -time.Second)
}

// issuePair signs both tokens for u and sets them as cookies.
func (h *AuthHandler) issuePair(c *gin.Context, u *model.User) (*AuthOut, error) {
	access, _, err := h.issuer.Issue(u.ID, tokens.Access)
	if err != nil {
		return nil, err
	}
	refresh, _, err := h.issuer.Issue(u.ID, tokens.Refresh)
	if err != nil {
		return nil, err
	}

	h.setCookie(c, tokens.AccessCookie, access, h.issuer.TTL(tokens.Access))
	h.setCookie(c, tokens.RefreshCookie, refresh, h.issuer.TTL(tokens.Refresh))
	return &AuthOut{
		User: model.NewUserView(u),
		Tokens: TokenPair{
			Access:    access,
			Refresh:   refresh,
			ExpiresIn: int64(h.issuer.TTL(tokens.Access).Seconds()),
		},
	}, nil
}

type RegisterReq struct {
	Email           string `json:"email" binding:"required,email" example:"alice@example.com"`
	Username        string `json:"username" binding:"required,max=150" example:"alice"`
	Password        string `json:"password" binding:"required,min=8" example:"correct-horse"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password" example:"correct-horse"`
}

// Register godoc
//
//	@Summary		Register
//	@Description	Create an account and sign in
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.RegisterReq	true	"Register payload"
//	@Success		201	{object}	serializer.Response{data=handler.AuthOut}
//	@Failure		409	{object}	serializer.Response
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req := RegisterReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	u, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}

	out, err := h.issuePair(c, u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "issue token failed", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: out})
}

type LoginReq struct {
	Email    string `json:"email" binding:"required" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"correct-horse"`
}

// Login godoc
//
//	@Summary		Login
//	@Description	Exchange credentials for an access and a refresh token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.LoginReq	true	"Login payload"
//	@Success		200	{object}	serializer.Response{data=handler.AuthOut}
//	@Failure		401	{object}	serializer.Response
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	u, err := h.svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	out, err := h.issuePair(c, u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "issue token failed", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type RefreshReq struct {
	Refresh string `json:"refresh"`
}

func (h *AuthHandler) refreshToken(c *gin.Context) string {
	req := RefreshReq{}
	if c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&req)
	}
	if req.Refresh != "" {
		return req.Refresh
	}
	raw, _ := c.Cookie(tokens.RefreshCookie)
	return raw
}

// Refresh godoc
//
//	@Summary		Refresh
//	@Description	Rotate the refresh token and issue a new access token. The token is read from the body or the refresh_token cookie.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.RefreshReq	false	"Refresh payload"
//	@Success		200	{object}	serializer.Response{data=handler.AuthOut}
//	@Failure		401	{object}	serializer.Response
//	@Router			/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	raw := h.refreshToken(c)
	if raw == "" {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("refresh token required"))
		return
	}

	ctx := c.Request.Context()
	claims, err := h.issuer.Parse(raw, tokens.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("invalid refresh token"))
		return
	}
	uid, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("invalid refresh token"))
		return
	}
	u, err := h.svc.GetByID(ctx, uid)
	if err != nil || !u.IsActive {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("invalid refresh token"))
		return
	}

	// refresh tokens are single use
	fresh, err := h.revoker.Consume(ctx, claims.ID, claims.Remaining(time.Now()))
	if err != nil {
		h.log.Sugar().Errorw("consume refresh token failed", "jti", claims.ID, "err", err)
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "token check failed", err))
		return
	}
	if !fresh {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("invalid refresh token"))
		return
	}

	out, err := h.issuePair(c, u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "issue token failed", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// Logout godoc
//
//	@Summary		Logout
//	@Description	Revoke the current access token and the refresh token, and clear the auth cookies
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.RefreshReq	false	"Refresh token to revoke"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()

	if v, ok := c.Get("claims"); ok {
		if claims, ok := v.(*tokens.Claims); ok {
			if err := h.revoker.Revoke(ctx, claims.ID, claims.Remaining(now)); err != nil {
				h.log.Sugar().Warnw("revoke access token failed", "jti", claims.ID, "err", err)
			}
		}
	}
	if raw := h.refreshToken(c); raw != "" {
		if claims, err := h.issuer.Parse(raw, tokens.Refresh); err == nil {
			if err := h.revoker.Revoke(ctx, claims.ID, claims.Remaining(now)); err != nil {
				h.log.Sugar().Warnw("revoke refresh token failed", "jti", claims.ID, "err", err)
			}
		}
	}

	h.clearCookies(c)
	c.JSON(http.StatusOK, serializer.Response{Msg: "logged out"})
}

// GetUserInfo godoc
//
//	@Summary		Current user
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.UserView}
//	@Router			/auth/user-info [get]
func (h *AuthHandler) GetUserInfo(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: model.NewUserView(user)})
}

type UpdateUserInfoReq struct {
	Email    *string `json:"email" binding:"omitempty,email" example:"alice@example.com"`
	Username *string `json:"username" binding:"omitempty,max=150" example:"alice"`
}

// UpdateUserInfo godoc
//
//	@Summary		Update current user
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.UpdateUserInfoReq	true	"UpdateUserInfo payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.UserView}
//	@Failure		409	{object}	serializer.Response
//	@Router			/auth/user-info [patch]
func (h *AuthHandler) UpdateUserInfo(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	req := UpdateUserInfoReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	u, err := h.svc.UpdateProfile(c.Request.Context(), user, service.UpdateProfileInput{
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: model.NewUserView(u)})
}
