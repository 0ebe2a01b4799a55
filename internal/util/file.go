package util

import (
	"archive/zip"
	"fmt"
)

type ArchiveInfo struct {
	Files int
	// Size is the total uncompressed size.
	Size int64
}

// InspectZip reads the central directory of a downloaded archive.
func InspectZip(path string) (ArchiveInfo, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return ArchiveInfo{}, fmt.Errorf("zip: %w", err)
	}
	defer func() {
		_ = r.Close()
	}()

	var info ArchiveInfo
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		info.Files++
		info.Size += int64(f.UncompressedSize64)
	}

	return info, nil
}
