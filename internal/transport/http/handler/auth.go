package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jahir-soochna/internal/domain"
	"jahir-soochna/internal/service"
	resp "jahir-soochna/internal/transport/http/response"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

type accountOut struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toAccountOut(a *domain.Account) accountOut {
	return accountOut{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Name     string `json:"name" binding:"required,max=64"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role" binding:"omitempty,oneof=lawyer citizen"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "Invalid data", err.Error())
		return
	}

	tok, a, err := h.svc.Register(c.Request.Context(), in.Name, in.Email, in.Password, in.Role)
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		resp.Fail(c, http.StatusBadRequest, "User already exists")
		return
	case domain.IsValidation(err):
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		resp.Fail(c, http.StatusInternalServerError, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": tok, "user": toAccountOut(a)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "Invalid data", err.Error())
		return
	}

	tok, a, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		resp.Fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		resp.Fail(c, http.StatusInternalServerError, "Failed to login")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok, "user": toAccountOut(a)})
}

func (h *AuthHandler) Me(c *gin.Context) {
	a, err := h.svc.Me(c.Request.Context(), c.GetString("userId"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resp.Fail(c, http.StatusNotFound, "User not found")
		return
	case err != nil:
		resp.Fail(c, http.StatusInternalServerError, "Failed to get user")
		return
	}
	c.JSON(http.StatusOK, toAccountOut(a))
}

// Logout 无状态 token，服务端无事可做
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
