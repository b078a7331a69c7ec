// Package gallery exposes a batch output directory as a read-only catalogue
// of height map images.
package gallery

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"heightmap-generator/internal/heightmap"
	"heightmap-generator/internal/shared/errors"

	"go.uber.org/multierr"
	billy "gopkg.in/src-d/go-billy.v4"
)

type Entry struct {
	heightmap.FileInfo
	Size int64 `json:"size"`
}

type Service struct {
	fs     billy.Filesystem
	dir    string
	logger *slog.Logger
}

func NewService(fs billy.Filesystem, dir string, logger *slog.Logger) *Service {
	logger.Debug("Initializing gallery service", "dir", dir)

	return &Service{
		fs:     fs,
		dir:    dir,
		logger: logger,
	}
}

// Ping reports whether the output directory exists.
func (s *Service) Ping() error {
	info, err := s.fs.Stat(s.dir)
	if err != nil {
		return errors.WrapExternal("output directory unavailable", err)
	}
	if !info.IsDir() {
		return errors.WrapExternal("output directory unavailable", fmt.Errorf("%s is not a directory", s.dir))
	}
	return nil
}

// List returns the height map files in the output directory, ordered by
// name parameters and then by index. Other files are ignored.
func (s *Service) List() ([]Entry, error) {
	logger := s.logger.With("component", "gallery_service", "operation", "list", "dir", s.dir)

	infos, err := s.fs.ReadDir(s.dir)
	if os.IsNotExist(err) {
		logger.Debug("Output directory does not exist yet")
		return []Entry{}, nil
	}
	if err != nil {
		return nil, errors.WrapExternal("failed to list output directory", err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		parsed, err := heightmap.ParseFileName(info.Name())
		if err != nil {
			continue
		}
		entries = append(entries, Entry{FileInfo: parsed, Size: info.Size()})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.SpectralIndex != b.SpectralIndex {
			return a.SpectralIndex < b.SpectralIndex
		}
		if a.SmoothingSigma != b.SmoothingSigma {
			return a.SmoothingSigma < b.SmoothingSigma
		}
		return a.Index < b.Index
	})

	logger.Debug("Listed height maps", "count", len(entries))
	return entries, nil
}

// Read returns the PNG bytes of a named height map. Only names produced by
// the batch are accepted, which keeps lookups inside the output directory.
func (s *Service) Read(name string) (data []byte, err error) {
	if _, err := heightmap.ParseFileName(name); err != nil {
		return nil, err
	}

	f, err := s.fs.Open(s.fs.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, errors.NotFoundf("height map %s not found", name)
	}
	if err != nil {
		return nil, errors.WrapExternal("failed to open height map", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	data, err = io.ReadAll(f)
	if err != nil {
		return nil, errors.WrapExternal("failed to read height map", err)
	}
	return data, nil
}
