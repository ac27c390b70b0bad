package user

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
)

type Handler struct {
	repo    *Repository
	refresh *RefreshStore
}

func NewHandler(repo *Repository, refresh *RefreshStore) *Handler {
	return &Handler{repo: repo, refresh: refresh}
}

// Register creates an account and signs the user straight in.
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration payload", "details": err.Error()})
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create account"})
		return
	}

	u := models.User{Email: req.Email, Name: req.Name, PasswordHash: hash, Role: "customer"}
	if err := h.repo.Create(c.Request.Context(), &u); err != nil {
		if errors.Is(err, ErrEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		log.Printf("❌ Register failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create account"})
		return
	}

	h.respondWithTokens(c, u, http.StatusCreated)
}

// Login authenticates by email and password.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login payload"})
		return
	}

	u, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// same answer for unknown email and bad password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	ok, err := VerifyPassword(req.Password, u.PasswordHash)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.respondWithTokens(c, *u, http.StatusOK)
}

// Refresh swaps a live refresh token for a new token pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req struct {
		UserID       string `json:"user_id" binding:"required"`
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid refresh payload"})
		return
	}

	ok, err := h.refresh.Check(c.Request.Context(), req.UserID, req.RefreshToken)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	id, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}
	u, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	h.respondWithTokens(c, *u, http.StatusOK)
}

// Logout revokes the refresh token.
func (h *Handler) Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	if err := h.refresh.Revoke(c.Request.Context(), userID); err != nil {
		log.Printf("⚠️  Could not revoke refresh token for %s: %v", userID, err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the signed-in profile.
func (h *Handler) Me(c *gin.Context) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	u, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) respondWithTokens(c *gin.Context, u models.User, status int) {
	access, err := IssueAccessToken(u)
	if err != nil {
		log.Printf("❌ Could not sign token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not sign in"})
		return
	}
	refresh, err := h.refresh.Issue(c.Request.Context(), u.ID.String())
	if err != nil {
		log.Printf("❌ Could not issue refresh token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not sign in"})
		return
	}

	c.JSON(status, gin.H{
		"token":         access,
		"refresh_token": refresh,
		"user":          u,
	})
}
