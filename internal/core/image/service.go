package image

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	_ "image/gif"  // 支援 GIF
	_ "image/jpeg" // 支援 JPEG
	_ "image/png"  // 支援 PNG

	_ "golang.org/x/image/webp" // 支援 WebP
)

var (
	// ErrInvalidImage 圖片資料無法解析或格式不支援
	ErrInvalidImage = errors.New("invalid image")
	// ErrImageTooLarge 圖片超過大小限制
	ErrImageTooLarge = errors.New("image too large")
)

// Service 圖片處理服務
type Service struct {
	maxSizeBytes int64
}

// NewService 創建新的圖片處理服務
func NewService(maxSizeBytes int64) *Service {
	return &Service{maxSizeBytes: maxSizeBytes}
}

// ProcessImage 驗證 data URI 或裸 base64 圖片，回傳標準化的 data URI
func (s *Service) ProcessImage(imageData string) (string, error) {
	imageData = strings.TrimSpace(imageData)
	if imageData == "" {
		return "", fmt.Errorf("%w: image data is empty", ErrInvalidImage)
	}

	payload := imageData
	if strings.HasPrefix(imageData, "data:") {
		// data:image/png;base64,xxxx
		header, body, ok := strings.Cut(imageData, ",")
		if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
			return "", fmt.Errorf("%w: invalid data uri", ErrInvalidImage)
		}
		payload = body
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: failed to decode base64 data: %v", ErrInvalidImage, err)
	}

	// 檢查文件大小
	if s.maxSizeBytes > 0 && int64(len(decoded)) > s.maxSizeBytes {
		return "", fmt.Errorf("%w: exceeds maximum limit of %d bytes", ErrImageTooLarge, s.maxSizeBytes)
	}

	// 只解析標頭，確認格式
	_, format, err := image.DecodeConfig(bytes.NewReader(decoded))
	if err != nil {
		return "", fmt.Errorf("%w: failed to decode image: %v", ErrInvalidImage, err)
	}
	if !isSupportedFormat(format) {
		return "", fmt.Errorf("%w: unsupported image format: %s", ErrInvalidImage, format)
	}

	return fmt.Sprintf("data:image/%s;base64,%s", format, payload), nil
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	switch format {
	case "jpeg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}
