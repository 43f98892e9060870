package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/dto"
	"github.com/lumina-studio/gallery-api/internal/httperr"
	"github.com/lumina-studio/gallery-api/internal/middleware"
	"github.com/lumina-studio/gallery-api/internal/timezone"
	ucBooking "github.com/lumina-studio/gallery-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AdminBookingHandler struct {
	listUC     *ucBooking.AdminListBookings
	updateUC   *ucBooking.AdminUpdateBooking
	calendarUC *ucBooking.AdminCalendar

	repo domain.Repository
	tz   string
}

func NewAdminBookingHandler(
	listUC *ucBooking.AdminListBookings,
	updateUC *ucBooking.AdminUpdateBooking,
	calendarUC *ucBooking.AdminCalendar,
	repo domain.Repository,
	tz string,
) *AdminBookingHandler {
	return &AdminBookingHandler{
		listUC:     listUC,
		updateUC:   updateUC,
		calendarUC: calendarUC,
		repo:       repo,
		tz:         tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AdminUpdateBookingRequest struct {
	Status      *string  `json:"status,omitempty"`
	AdminNotes  *string  `json:"admin_notes,omitempty"`
	PriceAgreed *float64 `json:"price_agreed,omitempty"`
}

// ======================================================
// LIST
// ======================================================

func (h *AdminBookingHandler) List(c *gin.Context) {
	f := domain.AdminListFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   parsePage(c.DefaultQuery("page", "1")),
		Limit:  parseLimit(c.DefaultQuery("limit", "20"), 20),
	}

	if dateStr := c.Query("date"); dateStr != "" {
		if date, err := time.Parse(domain.DateLayout, dateStr); err == nil {
			f.Date = &date
		}
	}

	bookings, total, stats, err := h.listUC.Execute(c.Request.Context(), f)
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
// DETAIL
// ======================================================

func (h *AdminBookingHandler) Get(c *gin.Context) {
	b, err := h.repo.GetByPublicID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	c.JSON(http.StatusOK, dto.FromBookingAdmin(b))
}

func (h *AdminBookingHandler) Update(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)
	publicID := c.Param("id")

	var req AdminUpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.updateUC.Execute(c.Request.Context(), staffID, publicID, ucBooking.AdminUpdateInput{
		Status:      req.Status,
		AdminNotes:  req.AdminNotes,
		PriceAgreed: req.PriceAgreed,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBookingAdmin(b))
}

// ======================================================
// CALENDAR
// ======================================================

func (h *AdminBookingHandler) Calendar(c *gin.Context) {
	now := timezone.NowIn(h.tz)

	year := now.Year()
	month := int(now.Month())

	if yearStr := c.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 2000 || y > 2100 {
			httperr.BadRequest(c, "invalid_year", "Invalid year.")
			return
		}
		year = y
	}

	if monthStr := c.Query("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			httperr.BadRequest(c, "invalid_month", "Invalid month.")
			return
		}
		month = m
	}

	result, err := h.calendarUC.Execute(c.Request.Context(), year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_build_calendar", "Could not build the calendar.")
		return
	}

	c.JSON(http.StatusOK, result)
}
