package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/dto"
	"github.com/lumina-studio/gallery-api/internal/httperr"
	"github.com/lumina-studio/gallery-api/internal/middleware"
	"github.com/lumina-studio/gallery-api/internal/models"
	ucBooking "github.com/lumina-studio/gallery-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db *gorm.DB

	createUC    *ucBooking.CreateBooking
	cancelUC    *ucBooking.CancelBooking
	deleteUC    *ucBooking.DeleteBooking
	listUC      *ucBooking.ListUserBookings
	availableUC *ucBooking.GetAvailableDates
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	deleteUC *ucBooking.DeleteBooking,
	listUC *ucBooking.ListUserBookings,
	availableUC *ucBooking.GetAvailableDates,
) *BookingHandler {
	return &BookingHandler{
		db:          db,
		createUC:    createUC,
		cancelUC:    cancelUC,
		deleteUC:    deleteUC,
		listUC:      listUC,
		availableUC: availableUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID   uint   `json:"service_id" binding:"required"`
	BookingDate string `json:"booking_date" binding:"required"`
	BookingTime string `json:"booking_time" binding:"required"`
	Duration    int    `json:"duration" binding:"required,min=1"`
	Location    string `json:"location"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	Message     string `json:"message"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Account not found.")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), &user, ucBooking.CreateBookingInput{
		ServiceID:   req.ServiceID,
		Date:        req.BookingDate,
		Time:        req.BookingTime,
		Duration:    req.Duration,
		Location:    req.Location,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Message:     req.Message,
	})
	if err != nil {
		// On a failed form the caller gets the field errors together with
		// the still-open dates, so it can redisplay the booking form.
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			dates, _ := h.availableUC.Execute(c.Request.Context())
			c.JSON(http.StatusBadRequest, gin.H{
				"error_code":      "validation_failed",
				"fields":          ve.Fields,
				"available_dates": dates,
			})
			return
		}
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromBooking(b))
}

// ======================================================
// LIST OWN
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	f := domain.UserListFilter{
		Status: c.Query("status"),
		Page:   parsePage(c.DefaultQuery("page", "1")),
		Limit:  parseLimit(c.DefaultQuery("limit", "10"), 10),
	}

	bookings, total, stats, err := h.listUC.Execute(c.Request.Context(), userID, f)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not load bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    total,
		"page":     f.Page,
		"limit":    f.Limit,
		"stats":    stats,
	})
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	publicID := c.Param("id")

	b, err := h.cancelUC.Execute(c.Request.Context(), userID, publicID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBooking(b))
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)
	publicID := c.Param("id")

	isStaff := role == models.RoleStaff || role == models.RoleAdmin

	if err := h.deleteUC.Execute(c.Request.Context(), userID, isStaff, publicID); err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) AvailableDates(c *gin.Context) {
	dates, err := h.availableUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_compute_availability", "Could not compute availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"available_dates": dates})
}

// CheckDate answers whether one date still has hour capacity for a session
// of the given duration.
func (h *BookingHandler) CheckDate(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.Parse(domain.DateLayout, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date, expected YYYY-MM-DD.")
		return
	}

	duration, err := strconv.Atoi(c.DefaultQuery("duration", "1"))
	if err != nil || duration < 1 {
		httperr.BadRequest(c, "invalid_duration", "Invalid duration.")
		return
	}

	ok, err := h.availableUC.CheckDate(c.Request.Context(), date, duration)
	if err != nil {
		httperr.Internal(c, "failed_to_check_capacity", "Could not check capacity.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      dateStr,
		"duration":  duration,
		"available": ok,
	})
}

// ======================================================
// HELPERS
// ======================================================

func parsePage(s string) int {
	page, _ := strconv.Atoi(s)
	if page <= 0 {
		page = 1
	}
	return page
}

func parseLimit(s string, def int) int {
	limit, _ := strconv.Atoi(s)
	if limit <= 0 || limit > 100 {
		limit = def
	}
	return limit
}
