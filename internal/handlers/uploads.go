package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	maxImageSize      = 10 * 1024 * 1024 // property images
	maxDocumentSize   = 5 * 1024 * 1024  // identity documents
	maxPropertyImages = 10
)

var (
	imageExtensions    = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true}
	documentExtensions = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".pdf": true}
)

func uploadRoot() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// saveUpload writes an uploaded file under <root>/<subdir> with a unique
// name and returns the stored path
func saveUpload(c *fiber.Ctx, file *multipart.FileHeader, subdir, prefix string, allowed map[string]bool, maxSize int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		return "", fmt.Errorf("file type %q not allowed", ext)
	}
	if file.Size > maxSize {
		return "", fmt.Errorf("file too large: %d bytes", file.Size)
	}

	dir := filepath.Join(uploadRoot(), subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), ext)
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + subdir + "/" + name, nil
}
