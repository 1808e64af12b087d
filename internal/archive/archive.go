// Package archive packages build outputs into compressed tarballs and names
// them. Byte-level transport of the result is the storage package's concern.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Stamp formats t with layout. Pure function on purpose: the naming scheme
// previously leaned on a shared date formatter, which leaks locale/timezone
// state between calls; this takes everything it needs as arguments.
func Stamp(t time.Time, layout string) string {
	return t.Format(layout)
}

// ArtifactName builds the conventional artifact file name:
// <project>-<version>-<bucket>-<yyyymmdd>.tar.gz
func ArtifactName(project, version, bucket string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%s-%s.tar.gz", project, version, bucket, Stamp(t.UTC(), "20060102"))
}

// Create writes a gzipped tarball at dest containing the given source paths.
// Files are stored under their base name; directories are walked and stored
// under their base name as prefix. Symlinks are preserved as links.
func Create(dest string, sources []string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create archive %s: %w", dest, err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	for _, src := range sources {
		if err := addPath(tw, src); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finalize archive %s: %w", dest, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("finalize archive %s: %w", dest, err)
	}
	return nil
}

func addPath(tw *tar.Writer, src string) error {
	base := filepath.Dir(src)
	return filepath.Walk(src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}

		var link string
		if info.Mode()&fs.ModeSymlink != 0 {
			if link, err = os.Readlink(path); err != nil {
				return fmt.Errorf("readlink %s: %w", path, err)
			}
		}

		hdr, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return fmt.Errorf("tar header for %s: %w", path, err)
		}
		hdr.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("write tar header for %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		if _, err := io.Copy(tw, f); err != nil {
			return fmt.Errorf("archive %s: %w", path, err)
		}
		return nil
	})
}
