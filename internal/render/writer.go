// Package render turns height maps into raster images and stores them.
package render

import (
	"bytes"
	"image/png"
	"io"
	"log/slog"
	"sync"

	"heightmap-generator/internal/heightmap"
	"heightmap-generator/internal/shared/errors"

	"go.uber.org/multierr"
	billy "gopkg.in/src-d/go-billy.v4"
)

// Encode writes hm to w as a PNG, one pixel per cell, with no margins.
func Encode(w io.Writer, hm *heightmap.Field, cm Colormap) error {
	img, err := Image(hm, cm)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Writer stores rendered height maps as files under Dir of a billy
// filesystem. It is safe for concurrent use.
type Writer struct {
	fs       billy.Filesystem
	dir      string
	colormap Colormap
	logger   *slog.Logger

	mu sync.Mutex
}

func NewWriter(fs billy.Filesystem, dir string, cm Colormap, logger *slog.Logger) *Writer {
	return &Writer{
		fs:       fs,
		dir:      dir,
		colormap: cm,
		logger:   logger.With("component", "image_writer", "dir", dir),
	}
}

// Write encodes hm and stores it as name, creating the output directory if
// needed. It returns the path of the written file.
func (w *Writer) Write(name string, hm *heightmap.Field) (string, error) {
	logger := w.logger.With("operation", "write", "file", name)

	var buf bytes.Buffer
	if err := Encode(&buf, hm, w.colormap); err != nil {
		return "", err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", errors.WrapExternal("failed to create output directory", err)
	}

	path := w.fs.Join(w.dir, name)
	if err := w.writeFile(path, buf.Bytes()); err != nil {
		logger.Error("Failed to write height map image", "error", err)
		return "", errors.WrapExternal("failed to write "+path, err)
	}

	logger.Debug("Height map image written", "bytes", buf.Len())
	return path, nil
}

func (w *Writer) writeFile(path string, data []byte) (err error) {
	f, err := w.fs.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	_, err = f.Write(data)
	return err
}
