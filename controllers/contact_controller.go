package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/talksapp/talks/models"
	"github.com/talksapp/talks/utils"
)

// ContactController stores contact form submissions.
type ContactController struct {
	db *gorm.DB
}

// NewContactController creates a ContactController.
func NewContactController(db *gorm.DB) *ContactController {
	return &ContactController{db: db}
}

// Submit records a contact message from the landing page.
func (c *ContactController) Submit(ctx *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40095, "invalid request payload")
		return
	}

	name := utils.Sanitize(strings.TrimSpace(req.Name))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	message := utils.Sanitize(strings.TrimSpace(req.Message))
	if name == "" || message == "" || !emailPattern.MatchString(email) {
		utils.Error(ctx, http.StatusBadRequest, 40096, "name, valid email and message are required")
		return
	}

	msg := models.ContactMessage{Name: name, Email: email, Message: message}
	if err := c.db.Create(&msg).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50110, "failed to store message")
		return
	}

	utils.Success(ctx, gin.H{"message": "thanks for reaching out"})
}
