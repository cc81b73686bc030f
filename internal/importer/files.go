package importer

import (
	"fmt"
	"os"
	"path/filepath"
)

// statementsDir is the inbox for statement exports awaiting import.
const statementsDir = "statements"

// processedDir receives statements after a successful applied import.
const processedDir = "statements/processed"

// FileInfo describes a statement file in the inbox.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Scan returns statement files in <booksDir>/statements/ that some
// registered parser claims by extension.
func Scan(booksDir string, reg *Registry) ([]FileInfo, error) {
	dir := filepath.Join(booksDir, statementsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading statements dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := reg.DetectFormat(e.Name()); !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a statement from statements/ to statements/processed/.
func MarkProcessed(booksDir, fileName string) error {
	src := filepath.Join(booksDir, statementsDir, fileName)
	dstDir := filepath.Join(booksDir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
