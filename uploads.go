package main

import (
	"bytes"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxUploadSizeBytes int64 = 5 * 1024 * 1024

var receiptMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

func extensionFromMimeType(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	return ""
}

func thumbnailObjectKey(objectKey string) string {
	dir := path.Dir(objectKey)
	filename := path.Base(objectKey)
	return path.Join(dir, "thumbnails", filename)
}

// uploadReceiptHandler ingests an expense receipt photo: the original goes to
// object storage as-is, plus a 200px thumbnail for list views. The response
// carries both public URLs; the client passes receipt_url when creating the
// expense.
func uploadReceiptHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		if err := authorizeEmployeeOnly(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		businessId, ok := utils.GetBusinessIdFromContext(c.Request.Context())
		if !ok || businessId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "employee session required"})
			return
		}

		fileHeader, err := c.FormFile("receipt")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "receipt file is required"})
			return
		}
		if fileHeader.Size > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
			return
		}
		mimeType := fileHeader.Header.Get("Content-Type")
		if !receiptMimeTypes[mimeType] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read receipt file"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadSizeBytes+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read receipt file"})
			return
		}
		if int64(len(data)) > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
			return
		}

		// Decode before touching storage so a corrupt file fails fast.
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image file"})
			return
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if ext == "" {
			ext = extensionFromMimeType(mimeType)
		}
		objectKey := path.Join(businessId, "receipts", uuid.New().String()+ext)

		ctx := c.Request.Context()
		if err := utils.UploadBytesToGCS(ctx, objectKey, data, mimeType); err != nil {
			config.LogError(logger, "uploads.go", "uploadReceiptHandler", "upload original", objectKey, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store receipt"})
			return
		}

		thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate thumbnail"})
			return
		}
		thumbnailKey := thumbnailObjectKey(objectKey)
		if err := utils.UploadBytesToGCS(ctx, thumbnailKey, buf.Bytes(), "image/jpeg"); err != nil {
			// Best-effort cleanup of the original; the upload as a whole failed.
			_ = utils.DeleteObjectFromGCS(ctx, objectKey)
			config.LogError(logger, "uploads.go", "uploadReceiptHandler", "upload thumbnail", thumbnailKey, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store receipt"})
			return
		}

		receiptURL, err := utils.GCSObjectURL(objectKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		thumbnailURL, _ := utils.GCSObjectURL(thumbnailKey)

		logger.WithFields(logrus.Fields{
			"business_id": businessId,
			"object_key":  objectKey,
			"size":        len(data),
		}).Info("[upload.receipt]")

		c.JSON(http.StatusOK, gin.H{
			"receipt_url":   receiptURL,
			"thumbnail_url": thumbnailURL,
			"object_key":    objectKey,
		})
	}
}
