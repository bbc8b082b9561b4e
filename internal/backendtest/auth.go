package backendtest

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"resell_front_end/internal/models"
)

// TokenFor signe un JWT HS256 dont le sujet est l'email, valable 24h
func (b *Backend) TokenFor(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(b.signingKey())
}

// RotateSecret change la clé de signature : tous les jetons déjà émis deviennent invalides
func (b *Backend) RotateSecret(secret string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.secret = []byte(secret)
}

func (b *Backend) signingKey() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.secret
}

func (b *Backend) parseToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return b.signingKey(), nil
	})
	if err != nil {
		return "", err
	}
	return token.Claims.GetSubject()
}

func (b *Backend) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.Split(c.GetHeader("Authorization"), " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		email, err := b.parseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		acc := b.accountByEmail(email)
		if acc == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		c.Set("user_id", acc.ID)
		c.Next()
	}
}

func (b *Backend) requireAdmin(c *gin.Context) {
	b.mu.Lock()
	acc := b.users[c.GetInt64("user_id")]
	b.mu.Unlock()
	if acc == nil || acc.Role != models.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	c.Next()
}

func (b *Backend) accountByEmail(email string) *account {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, acc := range b.users {
		if acc.Email == email {
			return acc
		}
	}
	return nil
}

func (b *Backend) register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.String(http.StatusBadRequest, "Error: Invalid registration data")
		return
	}
	if b.accountByEmail(input.Email) != nil {
		c.String(http.StatusBadRequest, "Error: Email is already in use!")
		return
	}
	b.SeedUser(input.Firstname, input.Lastname, input.Email, input.Password, models.RoleUser)
	c.String(http.StatusOK, "User registered successfully!")
}

func (b *Backend) login(c *gin.Context) {
	var input models.Credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.String(http.StatusBadRequest, "Error: Invalid login data")
		return
	}
	acc := b.accountByEmail(input.Email)
	if acc == nil || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(input.Password)) != nil {
		c.String(http.StatusUnauthorized, "Error: Invalid email or password")
		return
	}
	token, err := b.TokenFor(acc.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}
	c.JSON(http.StatusOK, models.LoginResponse{
		Token:    token,
		Username: acc.Fullname,
		Email:    acc.Email,
		Role:     string(acc.Role),
	})
}
