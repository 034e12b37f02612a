package handler

import (
	"os"
	"path/filepath"
	"strings"

	"caption-studio/internal/appdirs"
)

var appDirsResolver = appdirs.Resolve

type downloadRoot struct {
	alias string
	dir   string
}

func preferredUploadRoot() string {
	if dirs, err := appDirsResolver(); err == nil && dirs.UploadDir != "" {
		return dirs.UploadDir
	}
	return "uploads"
}

func downloadRoots() []downloadRoot {
	roots := make([]downloadRoot, 0, 2)
	if dirs, err := appDirsResolver(); err == nil {
		if dirs.ExportDir != "" {
			roots = append(roots, downloadRoot{alias: "exports", dir: dirs.ExportDir})
		}
		if dirs.UploadDir != "" {
			roots = append(roots, downloadRoot{alias: "uploads", dir: dirs.UploadDir})
		}
	}
	if len(roots) == 0 {
		roots = append(roots,
			downloadRoot{alias: "exports", dir: "exports"},
			downloadRoot{alias: "uploads", dir: "uploads"})
	}
	return roots
}

// resolveDownloadPath maps a requested URL path onto a file under one of the
// served roots. Requests that traverse outside a root never resolve.
func resolveDownloadPath(requested string) (string, bool) {
	requested = strings.TrimSpace(requested)
	requested = strings.TrimPrefix(requested, string(filepath.Separator))
	requested = strings.TrimPrefix(requested, "/")
	if requested == "" || hasParentTraversal(requested) {
		return "", false
	}
	requested = filepath.ToSlash(filepath.Clean(requested))

	for _, root := range downloadRoots() {
		prefix := root.alias + "/"
		if !strings.HasPrefix(requested, prefix) {
			continue
		}
		relativePath := filepath.FromSlash(strings.TrimPrefix(requested, prefix))
		candidate := filepath.Clean(filepath.Join(root.dir, relativePath))
		if !isPathWithinRoot(root.dir, candidate) {
			continue
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

func isPathWithinRoot(root, candidate string) bool {
	root = filepath.Clean(root)
	candidate = filepath.Clean(candidate)

	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func hasParentTraversal(path string) bool {
	normalized := strings.ReplaceAll(path, "\\", "/")
	for _, part := range strings.Split(normalized, "/") {
		if part == ".." {
			return true
		}
	}
	return false
}
