package mdpdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// Downloader receives a generated file, like a browser download.
// It returns where the file ended up, or "" when there is no path.
type Downloader interface {
	Download(ctx context.Context, name string, data []byte) (string, error)
}

var (
	_ Downloader = (*DirDownloader)(nil)
	_ Downloader = (*WriterDownloader)(nil)
)

// maxDuplicates bounds the "name (n).pdf" search.
const maxDuplicates = 1000

// DirDownloader saves files into a directory. An existing file is kept and
// the new one is saved as "name (1).pdf", "name (2).pdf" and so on.
type DirDownloader struct {
	Dir string
}

// Download writes data under a free name derived from name.
func (d *DirDownloader) Download(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, fileutil.DirPermissions); err != nil {
		return "", fmt.Errorf("%w: creating directory %s: %v", ErrDownload, dir, err)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(filepath.Base(name), ext)

	for i := 0; i < maxDuplicates; i++ {
		candidate := stem + ext
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)

		// O_EXCL claims the name so two exports never share a file.
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileutil.PublicPermissions) // #nosec G304 -- path is built from a slug
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDownload, err)
		}

		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			_ = os.Remove(path)
			return "", fmt.Errorf("%w: writing %s: %v", ErrDownload, path, err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(path)
			return "", fmt.Errorf("%w: closing %s: %v", ErrDownload, path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("%w: no free file name for %s in %s", ErrDownload, name, dir)
}

// WriterDownloader streams files to a writer, e.g. stdout.
type WriterDownloader struct {
	W io.Writer
}

// Download writes data to W.
func (w *WriterDownloader) Download(ctx context.Context, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := w.W.Write(data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	return "", nil
}
