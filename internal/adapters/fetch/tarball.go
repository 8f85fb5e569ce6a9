package fetch

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// extractTarball unpacks a gzipped tarball into dest, stripping the
// conventional leading "package/" directory. Entries escaping dest are
// rejected.
func extractTarball(dest string, data []byte) error {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return zerr.Wrap(err, "failed to open tarball")
	}
	defer gz.Close() //nolint:errcheck // best effort close

	reader := tar.NewReader(gz)
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.Wrap(err, "failed to read tarball")
		}

		name := strings.TrimPrefix(header.Name, "package/")
		if name == "" || name == "package" {
			continue
		}
		path := filepath.Join(dest, filepath.Clean(name))
		if !strings.HasPrefix(path, filepath.Clean(dest)+string(os.PathSeparator)) {
			return zerr.With(zerr.New("tarball entry escapes destination"), "entry", header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0o750); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", path)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", filepath.Dir(path))
			}
			if err := writeEntry(path, reader, header.FileInfo().Mode()); err != nil {
				return err
			}
		default:
			// Symlinks and special files are not part of published
			// packages; skip them.
			continue
		}
	}
}

func writeEntry(path string, r io.Reader, mode os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm()) //nolint:gosec // path is validated against dest
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close

	//nolint:gosec // tarballs are bounded by the in-memory download
	if _, err := io.Copy(f, r); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to extract file"), "path", path)
	}
	return nil
}
