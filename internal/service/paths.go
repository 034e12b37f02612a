package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"caption-studio/internal/appdirs"
)

var appDirsResolver = appdirs.Resolve

func resolveTempDir() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return dirs.TempDir, nil
}

func resolveExportDir() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return dirs.ExportDir, nil
}

func resolveUploadDir() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return dirs.UploadDir, nil
}

// resolveDownloadPath maps a local export artifact to the relative URL path
// the file endpoint serves it under. Paths outside the export root are
// rejected so a job record can never point at an arbitrary file.
func resolveDownloadPath(localPath string) (string, error) {
	exportDir, err := resolveExportDir()
	if err != nil {
		return "", err
	}

	cleanedLocalPath := filepath.Clean(localPath)
	relPath, err := filepath.Rel(exportDir, cleanedLocalPath)
	if err != nil {
		return "", err
	}
	if relPath == "." || relPath == "" {
		return "", fmt.Errorf("export artifact path %q is not a file path", localPath)
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("export artifact path %q is outside export root %q", localPath, exportDir)
	}
	return filepath.ToSlash(filepath.Join("exports", relPath)), nil
}
