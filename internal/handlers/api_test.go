package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lumina-studio/gallery-api/internal/config"
	dbpkg "github.com/lumina-studio/gallery-api/internal/db"
	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/models"
	"github.com/lumina-studio/gallery-api/internal/routes"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		StudioTimezone: "UTC",
	}

	router := gin.New()
	routes.RegisterRoutes(router, db, cfg)

	return &testEnv{router: router, db: db, cfg: cfg}
}

func (e *testEnv) createUser(t *testing.T, username, role string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hashed),
		Role:         role,
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) createService(t *testing.T) *models.Service {
	t.Helper()

	svc := &models.Service{
		Name:            "Portrait session",
		Price:           50,
		ServiceType:     models.ServiceTypePhoto,
		IsActive:        true,
		Bookable:        true,
		MinBookingHours: 1,
		MaxBookingHours: 8,
	}
	require.NoError(t, e.db.Create(svc).Error)
	return svc
}

func (e *testEnv) login(t *testing.T, username string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// bookableDate is a date far enough out and not a Sunday.
func bookableDate(daysAhead int) string {
	d := time.Now().UTC().AddDate(0, 0, daysAhead)
	if d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(domain.DateLayout)
}

// ======================================================
// AUTH
// ======================================================

func TestRegister(t *testing.T) {
	e := setupEnv(t)

	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":   "anna",
		"email":      "anna@example.com",
		"password":   "password123",
		"first_name": "Anna",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "anna", resp.User["username"])
	assert.Equal(t, models.RoleClient, resp.User["role"])
}

func TestRegisterDuplicate(t *testing.T) {
	e := setupEnv(t)
	e.createUser(t, "anna", models.RoleClient)

	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "anna",
		"email":    "other@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp.Error)
	assert.Contains(t, resp.Fields, "username")
}

func TestRegisterShortPassword(t *testing.T) {
	e := setupEnv(t)

	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "anna",
		"email":    "anna@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	e := setupEnv(t)
	e.createUser(t, "anna", models.RoleClient)

	t.Run("by username", func(t *testing.T) {
		token := e.login(t, "anna")
		assert.NotEmpty(t, token)
	})

	t.Run("by email", func(t *testing.T) {
		token := e.login(t, "anna@example.com")
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"username": "anna",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"username": "nobody",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// ======================================================
// PROFILE
// ======================================================

func TestProfile(t *testing.T) {
	e := setupEnv(t)
	e.createUser(t, "anna", models.RoleClient)
	token := e.login(t, "anna")

	t.Run("requires auth", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("get", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			IsStaff bool `json:"is_staff"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.IsStaff)
	})

	t.Run("update names", func(t *testing.T) {
		w := e.do(t, http.MethodPatch, "/api/me", token, gin.H{
			"first_name": "Anna",
			"last_name":  "Ivanova",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var user models.User
		require.NoError(t, e.db.Where("username = ?", "anna").First(&user).Error)
		assert.Equal(t, "Ivanova", user.LastName)
	})

	t.Run("email conflict", func(t *testing.T) {
		e.createUser(t, "ben", models.RoleClient)

		w := e.do(t, http.MethodPatch, "/api/me", token, gin.H{
			"email": "ben@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// ======================================================
// BOOKINGS
// ======================================================

func TestBookingFlow(t *testing.T) {
	e := setupEnv(t)
	e.createUser(t, "anna", models.RoleClient)
	svc := e.createService(t)
	token := e.login(t, "anna")

	var bookingID string

	t.Run("create", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/api/me/bookings", token, gin.H{
			"service_id":   svc.ID,
			"booking_date": bookableDate(7),
			"booking_time": "10:00",
			"duration":     2,
			"client_name":  "Anna",
			"client_phone": "+7 900 000 00 00",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "pending", resp.Status)
		require.NotEmpty(t, resp.ID)
		bookingID = resp.ID
	})

	t.Run("validation failure returns open dates", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/api/me/bookings", token, gin.H{
			"service_id":   svc.ID,
			"booking_date": time.Now().UTC().AddDate(0, 0, 1).Format(domain.DateLayout),
			"booking_time": "10:00",
			"duration":     2,
			"client_name":  "Anna",
			"client_phone": "+7 900 000 00 00",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			ErrorCode      string            `json:"error_code"`
			Fields         map[string]string `json:"fields"`
			AvailableDates []string          `json:"available_dates"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "validation_failed", resp.ErrorCode)
		assert.Contains(t, resp.Fields, "booking_date")
		assert.NotEmpty(t, resp.AvailableDates)
	})

	t.Run("list mine", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/me/bookings", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Bookings []map[string]any `json:"bookings"`
			Total    int64            `json:"total"`
			Stats    struct {
				Pending int64 `json:"pending"`
			} `json:"stats"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.EqualValues(t, 1, resp.Total)
		assert.EqualValues(t, 1, resp.Stats.Pending)
	})

	t.Run("cancel", func(t *testing.T) {
		w := e.do(t, http.MethodPatch, "/api/me/bookings/"+bookingID+"/cancel", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "cancelled", resp.Status)
	})

	t.Run("cancel twice", func(t *testing.T) {
		w := e.do(t, http.MethodPatch, "/api/me/bookings/"+bookingID+"/cancel", token, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := e.do(t, http.MethodDelete, "/api/me/bookings/"+bookingID, token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var count int64
		require.NoError(t, e.db.Model(&models.Booking{}).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	})

	t.Run("cancel unknown booking", func(t *testing.T) {
		w := e.do(t, http.MethodPatch, "/api/me/bookings/does-not-exist/cancel", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func TestAvailabilityEndpoints(t *testing.T) {
	e := setupEnv(t)

	t.Run("window", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/availability", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			AvailableDates []string `json:"available_dates"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AvailableDates)
	})

	t.Run("check date", func(t *testing.T) {
		path := fmt.Sprintf("/api/availability/check?date=%s&duration=2", bookableDate(7))
		w := e.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Available bool `json:"available"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Available)
	})

	t.Run("check bad date", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/availability/check?date=tomorrow", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// ======================================================
// STAFF
// ======================================================

func TestStaffGate(t *testing.T) {
	e := setupEnv(t)
	e.createUser(t, "anna", models.RoleClient)
	e.createUser(t, "boss", models.RoleStaff)

	clientToken := e.login(t, "anna")
	staffToken := e.login(t, "boss")

	t.Run("client forbidden", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/admin/bookings", clientToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("staff allowed", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/admin/bookings", staffToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAdminBookingUpdate(t *testing.T) {
	e := setupEnv(t)
	anna := e.createUser(t, "anna", models.RoleClient)
	staff := e.createUser(t, "boss", models.RoleStaff)
	svc := e.createService(t)
	staffToken := e.login(t, "boss")

	b := &models.Booking{
		UserID:      &anna.ID,
		ServiceID:   svc.ID,
		BookingDate: time.Now().UTC().AddDate(0, 0, 7),
		BookingTime: "10:00",
		Duration:    2,
		ClientName:  "Anna",
		Status:      "pending",
	}
	require.NoError(t, e.db.Create(b).Error)

	t.Run("confirm", func(t *testing.T) {
		w := e.do(t, http.MethodPatch, "/api/admin/bookings/"+b.PublicID, staffToken, gin.H{
			"status": "confirmed",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var stored models.Booking
		require.NoError(t, e.db.Where("public_id = ?", b.PublicID).First(&stored).Error)
		assert.Equal(t, "confirmed", stored.Status)
		require.NotNil(t, stored.AdminUserID)
		assert.Equal(t, staff.ID, *stored.AdminUserID)
	})

	t.Run("invalid transition", func(t *testing.T) {
		w := e.do(t, http.MethodPatch, "/api/admin/bookings/"+b.PublicID, staffToken, gin.H{
			"status": "pending",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("detail", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/admin/bookings/"+b.PublicID, staffToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			ID         string `json:"id"`
			AdminNotes string `json:"admin_notes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, b.PublicID, resp.ID)
	})

	t.Run("calendar", func(t *testing.T) {
		now := time.Now().UTC()
		path := fmt.Sprintf("/api/admin/calendar?year=%d&month=%d", now.Year(), int(now.Month()))
		w := e.do(t, http.MethodGet, path, staffToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("calendar rejects bad month", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/admin/calendar?year=2025&month=13", staffToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// ======================================================
// SERVICES
// ======================================================

func TestServiceEndpoints(t *testing.T) {
	e := setupEnv(t)
	e.createUser(t, "boss", models.RoleStaff)
	staffToken := e.login(t, "boss")

	active := e.createService(t)

	hidden := &models.Service{
		Name:        "Retired package",
		Price:       10,
		ServiceType: models.ServiceTypeOther,
		IsActive:    false,
	}
	require.NoError(t, e.db.Create(hidden).Error)

	t.Run("public list hides inactive", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/services", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Services []models.Service `json:"services"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Services, 1)
		assert.Equal(t, active.Name, resp.Services[0].Name)
	})

	t.Run("staff create", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/api/admin/services", staffToken, gin.H{
			"name":         "Wedding shoot",
			"price":        200,
			"service_type": "PHOTO",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var svc models.Service
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &svc))
		assert.Equal(t, 1, svc.MinBookingHours)
		assert.Equal(t, 8, svc.MaxBookingHours)
	})

	t.Run("min above max rejected", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/api/admin/services", staffToken, gin.H{
			"name":              "Broken",
			"price":             200,
			"service_type":      "PHOTO",
			"min_booking_hours": 6,
			"max_booking_hours": 2,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("staff update", func(t *testing.T) {
		w := e.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/services/%d", active.ID), staffToken, gin.H{
			"is_active": false,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var stored models.Service
		require.NoError(t, e.db.First(&stored, active.ID).Error)
		assert.False(t, stored.IsActive)
	})
}

// ======================================================
// GALLERY & HOME
// ======================================================

func TestGalleryWithoutStorage(t *testing.T) {
	e := setupEnv(t)
	e.createUser(t, "boss", models.RoleStaff)
	staffToken := e.login(t, "boss")

	t.Run("public list", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/gallery", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("upload without storage", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/api/admin/photos", staffToken, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("unknown photo", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/gallery/999", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHome(t *testing.T) {
	e := setupEnv(t)
	e.createUser(t, "anna", models.RoleClient)

	w := e.do(t, http.MethodGet, "/api/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		UserCount int64 `json:"user_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.UserCount)
}
