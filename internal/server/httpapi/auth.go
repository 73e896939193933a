package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskhub/internal/apierrors"
	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/server/auth"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/dmitrijs2005/taskhub/internal/server/services"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type AuthHandler struct {
	responder
	users         UserService
	secureCookies bool
}

func NewAuthHandler(users UserService, r responder, secureCookies bool) *AuthHandler {
	return &AuthHandler{responder: r, users: users, secureCookies: secureCookies}
}

// Login answers 401 with the same message for an unknown email and a
// wrong password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload, nil)
		return
	}

	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) || errors.Is(err, common.ErrorUnauthorized) {
			h.abort(c, http.StatusUnauthorized, apierrors.MsgInvalidCredentials, nil)
			return
		}
		h.fail(c, err)
		return
	}

	h.setRefreshCookie(c, res.RefreshToken)
	c.JSON(http.StatusOK, loginResponse{
		ID:           res.User.ID,
		Email:        res.User.Email,
		Name:         res.User.Name,
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken.Token,
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload, nil)
		return
	}
	name := req.Name
	if name == "" {
		name = req.Username
	}

	user, token, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Name:     name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, registerResponse{User: user, Token: token})
}

// Refresh redeems the refresh token from the body or, failing that, from
// the refreshToken cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload, nil)
			return
		}
	}
	if req.RefreshToken == "" {
		if cookie, err := c.Cookie(common.RefreshTokenCookie); err == nil {
			req.RefreshToken = cookie
		}
	}

	pair, err := h.users.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			h.abort(c, http.StatusUnauthorized, apierrors.MsgUnauthorized, nil)
			return
		}
		h.fail(c, err)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, refreshResponse{Token: pair.AccessToken, RefreshToken: pair.RefreshToken.Token})
}

func (h *AuthHandler) CountUsers(c *gin.Context) {
	n, err := h.users.CountUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, rt auth.RefreshToken) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     common.RefreshTokenCookie,
		Value:    rt.Token,
		Path:     "/",
		Expires:  rt.ExpiresAt.UTC(),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
