package handler

import (
	"net/http"

	"github.com/Ranjel272/my-backend-services/internal/apierror"
	"github.com/Ranjel272/my-backend-services/internal/dto"
	"github.com/Ranjel272/my-backend-services/internal/middleware"
	"github.com/Ranjel272/my-backend-services/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Token handles the form-encoded login and returns a bearer token.
func (h *AuthHandler) Token(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, apierror.New("username and password are required"))
		return
	}
	resp, err := h.svc.IssueToken(c.Request.Context(), username, password)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the identity resolved by the auth middleware. Downstream
// services call this endpoint to validate tokens remotely.
func (h *AuthHandler) Me(c *gin.Context) {
	id := middleware.GetIdentity(c)
	if id == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Not authenticated"))
		return
	}
	c.JSON(http.StatusOK, dto.MeResponse{
		Username: id.Username,
		UserRole: id.Role,
		Disabled: id.Disabled,
	})
}

func (h *AuthHandler) AdminOnly(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "This is restricted to admins only"})
}
