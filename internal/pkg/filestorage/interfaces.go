package filestorage

import (
	"errors"
	"mime/multipart"
)

// Upload errors
var (
	ErrNoFile              = errors.New("no file uploaded")
	ErrFileTooLarge        = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidPath         = errors.New("invalid file path")
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFileWithPath stores the upload under subPath and returns its path relative to the storage root
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file previously returned by SaveFileWithPath
	DeleteFile(filePath string) error

	// GetFullPath returns the filesystem path of a stored file
	GetFullPath(filePath string) (string, error)
}
