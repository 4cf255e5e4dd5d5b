package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/matterai/timesheet-backend/internal/config"
	"github.com/matterai/timesheet-backend/internal/entity"
)

// AllowedExtensions lists upload types accepted by the file storage.
var AllowedExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".txt": true, ".rtf": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".tiff": true,
	".mp3": true, ".wav": true, ".m4a": true,
	".mp4": true, ".avi": true, ".mov": true, ".wmv": true,
	".zip": true, ".rar": true, ".7z": true,
	".csv": true, ".xlsx": true, ".xls": true,
}

// Validator validates incoming requests and file uploads
type Validator struct {
	cfg config.FileUploadConfig
}

func NewValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateUpload validates one uploaded file against the extension allow
// list and the configured size limit.
func (v *Validator) ValidateUpload(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedExtensions[ext] {
		return fmt.Errorf("%w: %s", entity.ErrInvalidExtension, ext)
	}

	if file.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)",
			entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxFileSize)
	}

	return nil
}
