package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lumina-studio/gallery-api/internal/audit"
	"github.com/lumina-studio/gallery-api/internal/httperr"
	"github.com/lumina-studio/gallery-api/internal/middleware"
	"github.com/lumina-studio/gallery-api/internal/models"
	"github.com/lumina-studio/gallery-api/internal/storage"
)

const maxPhotoBytes = 10 << 20 // 10 MiB

type GalleryHandler struct {
	db    *gorm.DB
	store storage.PhotoStore
	audit *audit.Dispatcher
}

func NewGalleryHandler(db *gorm.DB, store storage.PhotoStore, audit *audit.Dispatcher) *GalleryHandler {
	return &GalleryHandler{db: db, store: store, audit: audit}
}

type photoResponse struct {
	models.Photo
	URL      string `json:"url"`
	ThumbURL string `json:"thumb_url"`
}

func (h *GalleryHandler) withURLs(c *gin.Context, p models.Photo) photoResponse {
	resp := photoResponse{Photo: p}
	if h.store == nil {
		return resp
	}

	if url, err := h.store.PresignURL(c.Request.Context(), p.ObjectKey); err == nil {
		resp.URL = url
	}
	if url, err := h.store.PresignURL(c.Request.Context(), p.ThumbKey); err == nil {
		resp.ThumbURL = url
	}
	return resp
}

// --------- Public ---------

func (h *GalleryHandler) List(c *gin.Context) {
	var photos []models.Photo
	if err := h.db.
		Where("is_active = ?", true).
		Order("display_order ASC, created_at DESC").
		Find(&photos).Error; err != nil {

		httperr.Internal(c, "failed_to_list_photos", "Could not load the gallery.")
		return
	}

	out := make([]photoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, h.withURLs(c, p))
	}

	c.JSON(http.StatusOK, gin.H{"photos": out})
}

func (h *GalleryHandler) Detail(c *gin.Context) {
	var photo models.Photo
	if err := h.db.
		Where("id = ? AND is_active = ?", c.Param("id"), true).
		First(&photo).Error; err != nil {

		httperr.NotFound(c, "photo_not_found", "Photo not found.")
		return
	}

	c.JSON(http.StatusOK, h.withURLs(c, photo))
}

// --------- Staff ---------

func (h *GalleryHandler) Upload(c *gin.Context) {
	if h.store == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_unavailable", "Photo storage is not configured.")
		return
	}

	staffID := c.MustGet(middleware.ContextUserID).(uint)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "An image file is required.")
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		httperr.BadRequest(c, "image_too_large", "The image exceeds the 10 MB limit.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Could not read the uploaded file.")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Could not read the uploaded file.")
		return
	}

	contentType := http.DetectContentType(content)
	if contentType != "image/jpeg" && contentType != "image/png" {
		httperr.BadRequest(c, "unsupported_image_type", "Only JPEG and PNG images are accepted.")
		return
	}

	thumb, err := storage.Thumbnail(content, storage.ThumbnailMaxEdge)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The uploaded file is not a valid image.")
		return
	}

	timestamp := time.Now().Unix()
	filename := strings.ReplaceAll(filepath.Base(fileHeader.Filename), " ", "_")
	objectKey := fmt.Sprintf("gallery/%d_%s", timestamp, filename)
	thumbKey := fmt.Sprintf("gallery/thumbs/%d_%s.webp", timestamp, strings.TrimSuffix(filename, filepath.Ext(filename)))

	ctx := c.Request.Context()
	if err := h.store.Upload(ctx, objectKey, content, contentType); err != nil {
		httperr.Internal(c, "failed_to_store_image", "Could not store the image.")
		return
	}
	if err := h.store.Upload(ctx, thumbKey, thumb, "image/webp"); err != nil {
		httperr.Internal(c, "failed_to_store_image", "Could not store the thumbnail.")
		return
	}

	photo := models.Photo{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		ObjectKey:   objectKey,
		ThumbKey:    thumbKey,
		ContentType: contentType,
		IsActive:    true,
	}
	if photo.Title == "" {
		photo.Title = filename
	}

	if err := h.db.Create(&photo).Error; err != nil {
		httperr.Internal(c, "failed_to_save_photo", "Could not save the photo.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "photo_uploaded",
		Entity:   "photo",
		EntityID: fmt.Sprint(photo.ID),
	})

	c.JSON(http.StatusCreated, h.withURLs(c, photo))
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	var photo models.Photo
	if err := h.db.First(&photo, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "photo_not_found", "Photo not found.")
		return
	}

	if h.store != nil {
		ctx := c.Request.Context()
		if err := h.store.Delete(ctx, photo.ObjectKey); err != nil {
			httperr.Internal(c, "failed_to_delete_image", "Could not delete the stored image.")
			return
		}
		_ = h.store.Delete(ctx, photo.ThumbKey)
	}

	if err := h.db.Delete(&photo).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_photo", "Could not delete the photo.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "photo_deleted",
		Entity:   "photo",
		EntityID: fmt.Sprint(photo.ID),
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
