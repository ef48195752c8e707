package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/jatenner/Snap2Healthmain-sub005/logger"
	"github.com/jatenner/Snap2Healthmain-sub005/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// UploadImage stores a multipart image upload and returns its URL.
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided in the request"})
		return
	}

	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10MB limit"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is not an image"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	if len(data) > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10MB limit"})
		return
	}

	url, err := utils.StoreImage(data, fileHeader.Filename, contentType)
	if err != nil {
		logger.L().Error("image store failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fileUrl":  url,
		"fileName": fileHeader.Filename,
		"fileSize": fileHeader.Size,
	})
}

type base64UploadRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// UploadImageBase64 accepts a data-URI image, mainly for clients that capture
// from a camera and have no file handle.
func UploadImageBase64(c *gin.Context) {
	var req base64UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	data, contentType, err := utils.DecodeImageDataURI(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(data) > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10MB limit"})
		return
	}
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is not an image"})
		return
	}

	url, err := utils.StoreImage(data, "upload", contentType)
	if err != nil {
		logger.L().Error("image store failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fileUrl":  url,
		"fileName": "upload",
		"fileSize": len(data),
	})
}
