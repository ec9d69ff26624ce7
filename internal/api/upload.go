package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type UploadHandler struct {
	imageService service.IImageService
}

func NewUploadHandler(imageService service.IImageService) *UploadHandler {
	return &UploadHandler{imageService: imageService}
}

func (h *UploadHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/uploads/picture", h.PresignPicture)
}

// PresignPicture returns a short-lived URL the client PUTs the image to.
func (h *UploadHandler) PresignPicture(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.PictureUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "content_type is required")
		return
	}

	resp, err := h.imageService.PresignUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "upload url created",
		"upload_url": resp.UploadURL,
		"object_url": resp.ObjectURL,
		"expires_at": resp.ExpiresAt,
	})
}
