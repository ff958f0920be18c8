package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"review-app/internal/models"
	"review-app/internal/services"
)

// multipartOverhead is the allowance for boundaries and part headers on top of the file size.
const multipartOverhead = 1 << 20

type ImageService interface {
	Upload(ctx context.Context, in services.UploadImageInput) (string, error)
}

type MediaHandler struct {
	service  ImageService
	maxBytes int64
}

func NewMediaHandler(service ImageService, maxBytes int64) *MediaHandler {
	return &MediaHandler{service: service, maxBytes: maxBytes}
}

// UploadImage handles POST /api/upload/image?product_id=... with a multipart "file" field.
func (h *MediaHandler) UploadImage(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(c, fmt.Errorf("%w: file too large", models.ErrValidation))
			return
		}
		badRequest(c, "missing file")
		return
	}
	defer file.Close()

	productID := c.Query("product_id")
	if productID == "" {
		productID = c.PostForm("product_id")
	}

	if productID == "" {
		badRequest(c, "missing product id")
		return
	}

	var reader io.Reader = file
	if h.maxBytes > 0 {
		// One byte past the limit is enough for the service to reject the file.
		reader = io.LimitReader(file, h.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		badRequest(c, "failed to read file")
		return
	}

	url, err := h.service.Upload(c.Request.Context(), services.UploadImageInput{
		ProductID:   productID,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ImageUploadResponse{URL: url})
}
