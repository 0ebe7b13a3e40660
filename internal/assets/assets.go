package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// ErrAssetMissing means the illustration for a tier is not on disk. It never
// invalidates a computed result.
var ErrAssetMissing = errors.New("asset missing")

// ImagesDir is the directory, relative to the base, holding the tier images.
const ImagesDir = "images"

var validKey = regexp.MustCompile(`^[a-z0-9_]+$`)

// Resolver maps asset keys to images/human_body_<key>.png under a base dir.
type Resolver struct {
	base string
}

// NewResolver uses dir, or the running executable's directory when dir is empty.
func NewResolver(dir string) (*Resolver, error) {
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("locate executable: %w", err)
		}
		dir = filepath.Dir(exe)
	}
	return &Resolver{base: dir}, nil
}

// ImagesRoot is the directory served to clients.
func (r *Resolver) ImagesRoot() string {
	return filepath.Join(r.base, ImagesDir)
}

// FileName is the image file name for key.
func FileName(key string) string {
	return "human_body_" + key + ".png"
}

// Resolve returns the path for key relative to the images root's parent,
// e.g. "images/human_body_healthy.png", or ErrAssetMissing.
func (r *Resolver) Resolve(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("asset key %q: %w", key, ErrAssetMissing)
	}
	rel := filepath.ToSlash(filepath.Join(ImagesDir, FileName(key)))
	info, err := os.Stat(filepath.Join(r.base, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", rel, ErrAssetMissing)
		}
		return "", fmt.Errorf("stat %s: %w", rel, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory: %w", rel, ErrAssetMissing)
	}
	return rel, nil
}
