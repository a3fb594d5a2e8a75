// Package gallery serves downscaled copies of the site's gallery images for
// the lightbox.
package gallery

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	ErrOutsideRoot = errors.New("path outside of gallery root")
	ErrBadSize     = errors.New("invalid thumbnail size")
)

type ImageThumbConverted struct {
	ThumbSize int64
	NewX      uint16
	NewY      uint16
	OldX      uint16
	OldY      uint16
}

// CreateThumb fits the image into a size x size box and writes it as JPEG
func CreateThumb(size uint, reader io.Reader, writer io.Writer) (result ImageThumbConverted, err error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return result, err
	}
	var newBuf bytes.Buffer
	newImage := resize.Thumbnail(size, size, img, resize.Lanczos3)
	if err = jpeg.Encode(&newBuf, newImage, &jpeg.Options{Quality: 90}); err != nil {
		return
	}
	imageRect := newImage.Bounds().Size()
	result.NewX = uint16(imageRect.X)
	result.NewY = uint16(imageRect.Y)

	imageRect = img.Bounds().Size()
	result.OldX = uint16(imageRect.X)
	result.OldY = uint16(imageRect.Y)

	result.ThumbSize, err = io.Copy(writer, &newBuf)
	return
}

// Thumbnailer creates thumbnails of files below Root and keeps them in memory
type Thumbnailer struct {
	Root    string
	MaxSize uint
	cache   cmap.ConcurrentMap[string, []byte]
}

func NewThumbnailer(root string, maxSize uint) *Thumbnailer {
	return &Thumbnailer{
		Root:    root,
		MaxSize: maxSize,
		cache:   cmap.New[[]byte](),
	}
}

// fullPath maps a site path to a file, refusing anything that escapes Root
func (t *Thumbnailer) fullPath(p string) (string, error) {
	cleaned := filepath.Clean("/" + filepath.FromSlash(p))
	full := filepath.Join(t.Root, cleaned)
	rel, err := filepath.Rel(t.Root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ErrOutsideRoot
	}
	return full, nil
}

func (t *Thumbnailer) Thumb(p string, size uint) ([]byte, error) {
	if size == 0 || size > t.MaxSize {
		return nil, ErrBadSize
	}
	full, err := t.fullPath(p)
	if err != nil {
		return nil, err
	}
	cacheKey := fmt.Sprintf("%s@%d", full, size)
	if b, ok := t.cache.Get(cacheKey); ok {
		return b, nil
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err = CreateThumb(size, f, &buf); err != nil {
		return nil, fmt.Errorf("thumb %s: %w", p, err)
	}
	b := buf.Bytes()
	t.cache.Set(cacheKey, b)
	return b, nil
}
