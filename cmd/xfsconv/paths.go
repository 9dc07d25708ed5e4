package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samcharles93/xfsconv/internal/render"
	"github.com/samcharles93/xfsconv/pkg/xfs"
)

// outputPath appends the format's extension to the input path, so
// "enemy.xfs" becomes "enemy.xfs.xml".
func outputPath(in string, f render.Format) string {
	return in + "." + render.Extension(f)
}

// checkInput reports a missing or non-regular input file.
func checkInput(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty input path")
	}
	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file %s doesn't exist", path)
		}
		return err
	}
	if st.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// writeOutput renders c into a temporary file next to path and renames it
// into place once the document is complete.
func writeOutput(path string, c *xfs.Container, f render.Format) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = render.Render(w, c, f); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
