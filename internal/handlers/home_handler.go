package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lumina-studio/gallery-api/internal/httperr"
	"github.com/lumina-studio/gallery-api/internal/models"
)

type HomeHandler struct {
	db *gorm.DB
}

func NewHomeHandler(db *gorm.DB) *HomeHandler {
	return &HomeHandler{db: db}
}

// Index returns the landing page data: studio description plus the
// registered user count. A counting failure is reported, never hidden
// behind a fake zero.
func (h *HomeHandler) Index(c *gin.Context) {
	var userCount int64
	if err := h.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		httperr.Internal(c, "failed_to_count_users", "Could not load the home page.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"studio":     "Lumina Photography Studio",
		"user_count": userCount,
	})
}
