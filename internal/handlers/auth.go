package handlers

import (
	"net/http"

	"freeworldfirst/internal/db"
	"freeworldfirst/internal/middleware"
	"freeworldfirst/internal/models"
	"freeworldfirst/internal/services"
	"freeworldfirst/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		users: services.NewUserService(db.DB),
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

// tokenResponse is what both register and login hand back: an access
// token plus the identity the frontend keeps around.
type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	User        sessionUser `json:"user"`
}

func newTokenResponse(user *models.User) (*tokenResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &tokenResponse{
		AccessToken: token,
		User: sessionUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			IsAdmin:  user.IsAdmin,
		},
	}, nil
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Register(req.Username, req.Email, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	resp, err := newTokenResponse(user)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	resp, err := newTokenResponse(user)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Profile returns the authenticated user's own record.
func (h *AuthHandler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"isAdmin":   user.IsAdmin,
		"createdAt": user.CreatedAt,
	})
}
