package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/market-api/internal/httperr"
	"github.com/BruksfildServices01/market-api/internal/imaging"
	"github.com/BruksfildServices01/market-api/internal/logging"
	"github.com/BruksfildServices01/market-api/internal/metrics"
	"github.com/BruksfildServices01/market-api/internal/storage"
)

const maxUploadSize = 5 * 1024 * 1024 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

type UploadHandler struct {
	store storage.ObjectStore
}

func NewUploadHandler(store storage.ObjectStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload accepts multipart form fields "file" and "type" (shop or
// product). Files land under a type-scoped folder with a
// timestamp+random name; collisions are accepted as negligible.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.UploadsRejectedTotal.WithLabelValues("missing_file").Inc()
		httperr.BadRequest(c, "missing_file", "No se ha subido ningún archivo")
		return
	}

	uploadType := c.PostForm("type")
	if uploadType != "shop" && uploadType != "product" {
		metrics.UploadsRejectedTotal.WithLabelValues("invalid_type").Inc()
		httperr.BadRequest(c, "invalid_type", "Tipo de archivo inválido")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		metrics.UploadsRejectedTotal.WithLabelValues("content_type").Inc()
		httperr.BadRequest(c, "invalid_content_type", "Tipo de archivo no permitido. Solo se permiten imágenes.")
		return
	}

	if fileHeader.Size > maxUploadSize {
		metrics.UploadsRejectedTotal.WithLabelValues("too_large").Inc()
		httperr.BadRequest(c, "file_too_large", "El archivo es demasiado grande. Máximo 5MB.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "upload_failed", "Error al subir el archivo")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		httperr.Internal(c, "upload_failed", "Error al subir el archivo")
		return
	}
	if int64(len(data)) > maxUploadSize {
		metrics.UploadsRejectedTotal.WithLabelValues("too_large").Inc()
		httperr.BadRequest(c, "file_too_large", "El archivo es demasiado grande. Máximo 5MB.")
		return
	}

	// Decodes the payload, so a renamed .gif (or anything else) is
	// rejected regardless of the declared content type.
	normalized, err := imaging.Normalize(data, contentType)
	if err != nil {
		metrics.UploadsRejectedTotal.WithLabelValues("not_an_image").Inc()
		httperr.BadRequest(c, "invalid_content_type", "Tipo de archivo no permitido. Solo se permiten imágenes.")
		return
	}

	folder := "products"
	if uploadType == "shop" {
		folder = "shops"
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:13], ext)

	url, err := h.store.Put(c.Request.Context(), folder, filename, contentType, normalized)
	if err != nil {
		logging.Get().Error("failed to store upload", zap.String("folder", folder), zap.Error(err))
		httperr.Internal(c, "upload_failed", "Error al subir el archivo")
		return
	}

	metrics.UploadsTotal.Inc()

	c.JSON(http.StatusOK, gin.H{
		"url":      url,
		"filename": filename,
		"size":     len(normalized),
		"type":     contentType,
	})
}
