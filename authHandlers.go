package main

import (
	"net/http"

	"bitbucket.org/mmdatafocus/bizmanager_backend/models"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
			return
		}
		identifier := req.Username
		if identifier == "" {
			identifier = req.Email
		}
		if identifier == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username or email is required"})
			return
		}

		result, err := models.Login(c.Request.Context(), identifier, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := models.Logout(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": ok})
	}
}

func sessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := models.GetSession(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
