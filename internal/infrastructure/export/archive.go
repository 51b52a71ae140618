package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._ -]`)

// Archive keeps generated documents on the local filesystem so exports
// remain retrievable after the download response is gone. Files are
// grouped by category subfolder under the configured output directory.
type Archive struct {
	baseDir string
	logger  *zap.Logger
}

// NewArchive creates an Archive rooted at baseDir.
func NewArchive(baseDir string, logger *zap.Logger) *Archive {
	return &Archive{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Place returns the full path a document should be written to, creating
// the category folder if needed. Names are sanitized and the resulting
// path is checked to stay inside the archive root.
func (a *Archive) Place(category, filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("cannot place document: empty filename")
	}

	dir := filepath.Join(a.baseDir, sanitizeName(category))
	fullPath := filepath.Join(dir, sanitizeName(filename))

	if err := a.validatePath(fullPath); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		a.logger.Error("Failed to create archive folder",
			zap.String("dir", dir),
			zap.Error(err))
		return "", fmt.Errorf("failed to create archive folder: %w", err)
	}

	return fullPath, nil
}

// validatePath checks that the path stays within the archive root.
func (a *Archive) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(a.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve archive root: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return fmt.Errorf("path escapes archive root: %s", fullPath)
	}
	return nil
}

// sanitizeName strips path separators and shell-unfriendly characters so
// user-influenced values cannot traverse out of the archive.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")
	name = strings.ReplaceAll(name, "..", "_")
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if name == "" {
		name = "unnamed"
	}
	return name
}
