package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/rutasloja/rutas-backend/internal/errors"
	"github.com/rutasloja/rutas-backend/internal/middleware"
	"github.com/rutasloja/rutas-backend/internal/storage"
)

type UploadController struct {
	uploader storage.Uploader
}

func NewUploadController(uploader storage.Uploader) *UploadController {
	return &UploadController{uploader: uploader}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder" binding:"omitempty,oneof=covers places avatars"`
}

// PresignCover returns a presigned PUT URL; the client uploads directly and
// then stores file_url as the route cover or place image.
// POST /api/v1/upload/cover
func (ctrl *UploadController) PresignCover(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	folder := req.Folder
	if folder == "" {
		folder = storage.FolderCovers
	}

	upload, err := ctrl.uploader.PresignUpload(c.Request.Context(), folder, req.Filename, req.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrContentTypeNotAllowed) {
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Solo se permiten imágenes JPEG, PNG o WEBP")
			return
		}
		log.Error("Failed to presign upload", err, map[string]interface{}{
			"filename": req.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "No se pudo preparar la subida")
		return
	}

	log.Info("Upload URL issued", map[string]interface{}{
		"key":    upload.Key,
		"folder": folder,
	})
	c.JSON(http.StatusOK, upload)
}
