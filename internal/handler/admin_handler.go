package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/codesmith/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 校验用户名与密码并建立会话。
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "username and password are required") {
		return
	}

	var user db.User
	if err := a.db.WithContext(c.Request.Context()).
		Where("username = ?", strings.TrimSpace(req.Username)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusUnauthorized, "invalid username or password")
			return
		}
		respondInternal(c, err, "login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		respondInternal(c, err, "failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

// Logout 清除会话。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondInternal(c, err, "failed to clear session")
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the logged-in administrator.
func (a *API) Me(c *gin.Context) {
	session := sessions.Default(c)
	c.JSON(http.StatusOK, gin.H{
		"user_id":  session.Get(sessionUserIDKey),
		"username": session.Get(sessionUsernameKey),
	})
}

// AuthRequired rejects requests without an admin session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserIDKey) == nil {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}
