package handlers

import (
	"context"
	"net/http"
	"time"

	"twinmind/config"
	"twinmind/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const ownerSubject = "owner"

// LoginHandler authenticates the owner against the configured bcrypt hash
// and issues a session token.
func LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if config.AppConfig.OwnerPasswordHash == "" {
		utils.JSONError(c, http.StatusInternalServerError, "login not configured", "OWNER_PASSWORD_HASH is unset")
		return
	}
	if input.Email != config.AppConfig.OwnerEmail {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(config.AppConfig.OwnerPasswordHash), []byte(input.Password)); err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := utils.GenerateToken(ownerSubject, input.Email, 24*time.Hour)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	authCache := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + ownerSubject
	if err := authCache.Set(context.Background(), cacheKey, utils.HashToken(token), time.Hour).Err(); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to store session", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// LogoutHandler revokes the current owner session.
func LogoutHandler(c *gin.Context) {
	authCache := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + ownerSubject
	if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to revoke session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
