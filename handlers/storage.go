package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"sort"
	"time"

	"portfolio/services/storage"
	"portfolio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler accepts multipart uploads and passes them to the object store.
type StorageHandler struct {
	StorageSvc storage.StorageService
	Folder     string
	// MaxBytes caps the request body; zero means no cap.
	MaxBytes int64
	Now      func() time.Time
}

func NewStorageHandler(svc storage.StorageService, folder string, maxBytes int64) *StorageHandler {
	return &StorageHandler{StorageSvc: svc, Folder: folder, MaxBytes: maxBytes, Now: time.Now}
}

// UploadFileHandler stores the first file found in the form, whatever its
// field name, and returns its public URL.
func (h *StorageHandler) UploadFileHandler(c *gin.Context) {
	logger := getLogger(c)

	if h.MaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes)
	}
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.JSONError(c, utils.NewValidationError("File is too large"))
			return
		}
		utils.JSONError(c, utils.NewValidationError("No file uploaded"))
		return
	}

	fields := make([]string, 0, len(form.File))
	for field, files := range form.File {
		if len(files) > 0 {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		utils.JSONError(c, utils.NewValidationError("No file uploaded"))
		return
	}
	sort.Strings(fields)
	fileHeader := form.File[fields[0]][0]

	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, utils.NewInternalError("File upload failed", err))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	objectName := storage.ObjectName(h.Folder, fileHeader.Filename, now())

	url, err := h.StorageSvc.Upload(c.Request.Context(), objectName, contentType, file)
	if err != nil {
		utils.JSONError(c, utils.NewInternalError("File upload failed", err))
		return
	}
	logger.Info("File uploaded", zap.String("object", objectName), zap.Int64("size", fileHeader.Size))
	utils.JSONSuccess(c, http.StatusOK, "File uploaded successfully!", gin.H{"url": url})
}
