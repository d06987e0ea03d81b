package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront-labs/storefront-api/models"
	"gorm.io/gorm"
)

type SignupInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SigninInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/signup
func Signup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var existing models.User
		err := db.Where("username = ? OR email = ?", input.Username, input.Email).
			First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing users"})
			return
		}

		hash, err := HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		var userRole models.Role
		if err := db.FirstOrCreate(&userRole, models.Role{Name: "USER"}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve role"})
			return
		}

		user := models.User{
			ID:           uuid.NewString(),
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: hash,
			Roles:        []models.Role{userRole},
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// POST /api/auth/signin
func Signin(db *gorm.DB, tokens *TokenService, transport *SessionTransport) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SigninInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Preload("Roles").Where("username = ?", input.Username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bad credentials"})
			return
		}

		if !VerifyPassword(input.Password, user.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bad credentials"})
			return
		}

		token, err := tokens.Issue(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		http.SetCookie(c.Writer, transport.Cookie(token))
		c.JSON(http.StatusOK, gin.H{
			"id":       user.ID,
			"username": user.Username,
			"roles":    user.RoleNames(),
			"token":    token,
		})
	}
}

// POST /api/auth/signout
func Signout(transport *SessionTransport) gin.HandlerFunc {
	return func(c *gin.Context) {
		http.SetCookie(c.Writer, transport.ClearCookie())
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
	}
}
