package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Dirs is the fixed on-disk layout: raw uploads land in Originals, served
// assets in Processed, extracted stills in Thumbnails.
type Dirs struct {
	Root       string
	Originals  string
	Processed  string
	Thumbnails string
}

func NewDirs(root string) Dirs {
	return Dirs{
		Root:       root,
		Originals:  filepath.Join(root, "originals"),
		Processed:  filepath.Join(root, "processed"),
		Thumbnails: filepath.Join(root, "thumbnails"),
	}
}

// Ensure creates the layout. Failure here is fatal at startup.
func (d Dirs) Ensure() error {
	for _, dir := range []string{d.Originals, d.Processed, d.Thumbnails} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("create storage directory %s: %w", dir, err)
		}
	}
	return nil
}

func (d Dirs) All() []string {
	return []string{d.Originals, d.Processed, d.Thumbnails}
}

// NewBaseName returns a collision-resistant base for one upload, combining
// a timestamp with a random component. Every per-request filename derives
// from it.
func NewBaseName() string {
	return fmt.Sprintf("video-%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}

// RawName keeps the client file's extension, lowercased, on the generated base.
func RawName(base, clientFilename string) string {
	return base + strings.ToLower(filepath.Ext(clientFilename))
}

// ProcessedName is the derived name of a transcoded asset.
func ProcessedName(base string) string {
	return base + ".mp4"
}

// ThumbnailName is the derived name of the extracted still.
func ThumbnailName(base string) string {
	return base + "_thumb.jpg"
}
