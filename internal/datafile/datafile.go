// Package datafile makes sure required data files are present locally,
// downloading them from a fallback URL when one is configured.
package datafile

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/partsearch/parts-search/internal/pkg/errors"
)

// Ensure returns the path once the file exists. A missing file without a
// source URL is a hard error; the caller decides whether an empty fallback
// is acceptable.
func Ensure(path, sourceURL string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if sourceURL == "" {
		return "", apperrors.DataFileError(
			fmt.Sprintf("required data file missing and no download URL provided: %s", path), nil)
	}
	if err := download(path, sourceURL); err != nil {
		return "", apperrors.DataFileError(
			fmt.Sprintf("downloading %s from %s", path, sourceURL), err)
	}
	return path, nil
}

func download(path, sourceURL string) error {
	resp, err := http.Get(sourceURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadLines loads a line-oriented file, skipping blank lines and comments
// starting with #.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.DataFileError(fmt.Sprintf("opening %s", path), err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.DataFileError(fmt.Sprintf("reading %s", path), err)
	}
	return lines, nil
}
