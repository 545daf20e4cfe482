package history

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const fallbackFilename = "generated_image"

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9\s]`)
	filenameSpaces      = regexp.MustCompile(`\s+`)
)

// SafeFilename derives a download name from a prompt: lowercase ASCII
// letters and digits, runs of whitespace as underscores, at most 50
// characters, always ending in .png.
func SafeFilename(prompt string) string {
	name := strings.ToLower(prompt)
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = filenameSpaces.ReplaceAllString(name, "_")
	if len(name) > 50 {
		name = name[:50]
	}
	if name == "" {
		name = fallbackFilename
	}
	return name + ".png"
}

// Export writes the item's PNG into dir and returns the file path.
func Export(item Item, dir string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(item.Base64)
	if err != nil {
		return "", fmt.Errorf("decode history image %d: %w", item.ID, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, SafeFilename(item.Prompt))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
