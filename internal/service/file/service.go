package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kita-hr/leave-backend-go/internal/pkg/storage"
)

var allowedAttachmentExts = []string{".pdf", ".jpg", ".jpeg", ".png", ".docx", ".xlsx"}

type FileService interface {
	// UploadRequestAttachment stores a doctor note or supporting document
	// for a leave request and returns the storage path.
	UploadRequestAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	DownloadFile(ctx context.Context, path string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func (s *fileServiceImpl) UploadRequestAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	isValid := false
	for _, allowed := range allowedAttachmentExts {
		if ext == allowed {
			isValid = true
			break
		}
	}
	if !isValid {
		return "", fmt.Errorf("invalid file type: only pdf, jpg, jpeg, png, docx, xlsx allowed")
	}

	// Generate unique filename
	uniqueID := uuid.New().String()
	newFilename := fmt.Sprintf("%s%s", uniqueID, ext)
	path := filepath.Join("attachments", userID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) DownloadFile(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, path)
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
