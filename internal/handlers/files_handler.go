package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/sandy-the-earth/nfc-backend/internal/storage"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

// FilesHandler serves uploaded images back out of the storage backend.
type FilesHandler struct {
	files storage.Storage
}

func NewFilesHandler(files storage.Storage) *FilesHandler {
	return &FilesHandler{files: files}
}

func (h *FilesHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/files/*path", h.Serve)
}

func (h *FilesHandler) Serve(c *gin.Context) {
	path := c.Param("path")

	reader, err := h.files.Get(c.Request.Context(), path)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrNotFound(err))
		return
	}
	defer reader.Close()

	if contentType := mime.TypeByExtension(filepath.Ext(path)); contentType != "" {
		c.Header("Content-Type", contentType)
	}
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
