package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lumina-studio/gallery-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required"`
	Duration        string  `json:"duration"`
	ServiceType     string  `json:"service_type" binding:"required,oneof=PHOTO VIDEO EDITING OTHER"`
	DisplayOrder    int     `json:"display_order"`
	Bookable        *bool   `json:"bookable,omitempty"`
	MinBookingHours int     `json:"min_booking_hours"`
	MaxBookingHours int     `json:"max_booking_hours"`
	PrepTimeHours   int     `json:"prep_time_hours"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Duration        *string  `json:"duration,omitempty"`
	ServiceType     *string  `json:"service_type,omitempty" binding:"omitempty,oneof=PHOTO VIDEO EDITING OTHER"`
	IsActive        *bool    `json:"is_active,omitempty"`
	DisplayOrder    *int     `json:"display_order,omitempty"`
	Bookable        *bool    `json:"bookable,omitempty"`
	MinBookingHours *int     `json:"min_booking_hours,omitempty"`
	MaxBookingHours *int     `json:"max_booking_hours,omitempty"`
	PrepTimeHours   *int     `json:"prep_time_hours,omitempty"`
}

// --------- Handlers ---------

// List returns active services ordered for display, plus a grouping by type
// for the pricing page.
func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("is_active = ?", true).
		Order("display_order ASC, service_type ASC, name ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	byType := map[string][]models.Service{}
	for _, svc := range services {
		byType[svc.ServiceType] = append(byType[svc.ServiceType], svc)
	}

	c.JSON(http.StatusOK, gin.H{
		"services":         services,
		"services_by_type": byType,
	})
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	minHours := req.MinBookingHours
	if minHours <= 0 {
		minHours = 1
	}
	maxHours := req.MaxBookingHours
	if maxHours <= 0 {
		maxHours = 8
	}
	if minHours > maxHours {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation_failed",
			"fields": gin.H{"min_booking_hours": "minimum hours cannot exceed maximum hours"},
		})
		return
	}

	bookable := true
	if req.Bookable != nil {
		bookable = *req.Bookable
	}

	svc := models.Service{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Duration:        req.Duration,
		ServiceType:     req.ServiceType,
		IsActive:        true,
		DisplayOrder:    req.DisplayOrder,
		Bookable:        bookable,
		MinBookingHours: minHours,
		MaxBookingHours: maxHours,
		PrepTimeHours:   req.PrepTimeHours,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Duration != nil {
		svc.Duration = *req.Duration
	}
	if req.ServiceType != nil {
		svc.ServiceType = *req.ServiceType
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		svc.DisplayOrder = *req.DisplayOrder
	}
	if req.Bookable != nil {
		svc.Bookable = *req.Bookable
	}
	if req.MinBookingHours != nil {
		svc.MinBookingHours = *req.MinBookingHours
	}
	if req.MaxBookingHours != nil {
		svc.MaxBookingHours = *req.MaxBookingHours
	}
	if req.PrepTimeHours != nil {
		svc.PrepTimeHours = *req.PrepTimeHours
	}

	if svc.MinBookingHours > svc.MaxBookingHours {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation_failed",
			"fields": gin.H{"min_booking_hours": "minimum hours cannot exceed maximum hours"},
		})
		return
	}

	if err := h.db.Save(&svc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	c.JSON(http.StatusOK, svc)
}
