package images

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/dgallion1/mdrender/internal/vistree"
)

// Resolver maps image references to local files under a base directory.
// Remote URL schemes are rejected, not fetched.
type Resolver struct {
	BaseDir string
}

func NewResolver(baseDir string) *Resolver {
	return &Resolver{BaseDir: baseDir}
}

// Resolve checks that target names a readable local file and probes its pixel
// dimensions. Relative targets are joined to BaseDir. Width and Height are
// left at 0 when the format cannot be decoded; that is not an error.
func (r *Resolver) Resolve(target, alt string) (vistree.Image, error) {
	if isRemote(target) {
		return vistree.Image{}, fmt.Errorf("remote image scheme not supported: %s", target)
	}

	path := target
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.BaseDir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return vistree.Image{}, fmt.Errorf("image not readable: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return vistree.Image{}, fmt.Errorf("image not readable: %w", err)
	}
	if info.IsDir() {
		return vistree.Image{}, fmt.Errorf("image path is a directory: %s", path)
	}

	img := vistree.Image{Path: path, Alt: alt}
	if cfg, _, err := image.DecodeConfig(f); err == nil {
		img.Width = cfg.Width
		img.Height = cfg.Height
	}
	return img, nil
}

// isRemote reports whether target carries a URL scheme that would require a
// network fetch (or an inline data payload).
func isRemote(target string) bool {
	t := strings.ToLower(strings.TrimSpace(target))
	if strings.Contains(t, "://") {
		return true
	}
	for _, prefix := range []string{"http:", "https:", "ftp:", "data:", "mailto:"} {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}
