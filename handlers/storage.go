package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"barberhub/services/storage"

	"github.com/gin-gonic/gin"
)

// StorageHandler exposes the off-record image upload endpoints. Inline
// image storage is the default path; these endpoints exist for deployments
// that move images out of the document store.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// allowedFolders defines the permitted upload folders.
var allowedFolders = map[string]bool{
	"profiles": true,
	"covers":   true,
}

// UploadImageHandler handles POST /api/admin/storage/:folder.
func (h *StorageHandler) UploadImageHandler(c *gin.Context) {
	if h.StorageSvc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "off-record storage is not configured"})
		return
	}
	folder := c.Param("folder")
	if !allowedFolders[folder] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid folder; allowed values are 'profiles' and 'covers'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file", "detail": err.Error()})
		return
	}
	defer file.Close()

	name := strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	url, err := h.StorageSvc.UploadImage(c.Request.Context(), file, folder, name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DeleteImageHandler handles DELETE /api/admin/storage/:folder/:id.
func (h *StorageHandler) DeleteImageHandler(c *gin.Context) {
	if h.StorageSvc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "off-record storage is not configured"})
		return
	}
	publicID := c.Param("folder") + "/" + c.Param("id")
	if err := h.StorageSvc.DeleteImage(c.Request.Context(), publicID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
