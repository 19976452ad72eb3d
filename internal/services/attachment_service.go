package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"photochat/internal/enums"
	"photochat/internal/errs"
	"photochat/internal/interfaces"

	"github.com/google/uuid"
)

// AttachmentService turns a local photo into a durably stored, publicly
// addressable URL. Each call produces a fresh object; there is no delete path,
// so failed sends after a successful upload leave the object orphaned.
type AttachmentService struct {
	fileManager interfaces.FileManager
}

func NewAttachmentService(fileManager interfaces.FileManager) *AttachmentService {
	return &AttachmentService{
		fileManager: fileManager,
	}
}

// Upload stores the photo bytes under a collision-resistant key derived from the
// upload time and the original extension. The extension is required: the stored
// content type depends on it.
func (as *AttachmentService) Upload(ctx context.Context, fileName string, file io.Reader, fileSize int64) (string, error) {
	ext := filepath.Ext(fileName)
	if ext == "" {
		return "", fmt.Errorf("%w: %q", errs.ErrMissingFileExtension, fileName)
	}

	key := objectKey(ext)
	contentType := contentTypeByExtension(ext)

	url, err := as.fileManager.UploadFile(ctx, key, file, fileSize, contentType, enums.FILE_BUCKET_CHAT_PHOTOS)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrUploadFailed, err)
	}
	return url, nil
}

func objectKey(ext string) string {
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}

func contentTypeByExtension(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	default:
		return "application/octet-stream"
	}
}
