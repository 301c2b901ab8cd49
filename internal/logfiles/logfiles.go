// Package logfiles finds log files under a directory tree and reads them as
// one continuous sequence of lines.
package logfiles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compressed variants of a log file are recognized by these suffixes.
const (
	SuffixGzip = ".gz"
	SuffixZstd = ".zst"
)

// Collect walks root, following directory symlinks, and returns the lines of
// every regular file whose name ends with name (or name plus a compression
// suffix). Files are read in walk order and their lines concatenated with no
// boundary marker. Entries the walk cannot stat or list are skipped; a
// matched file that cannot be opened or read is an error naming the file.
func Collect(root, name string) ([]string, error) {
	if name == "" {
		return nil, errors.New("logfiles: empty file name")
	}
	var files []string
	walk(root, map[string]bool{}, func(p string) {
		if matches(filepath.Base(p), name) {
			files = append(files, p)
		}
	})
	var lines []string
	for _, f := range files {
		got, err := readLines(f)
		if err != nil {
			return nil, err
		}
		lines = append(lines, got...)
	}
	return lines, nil
}

func matches(base, name string) bool {
	return strings.HasSuffix(base, name) ||
		strings.HasSuffix(base, name+SuffixGzip) ||
		strings.HasSuffix(base, name+SuffixZstd)
}

// walk visits every non-directory below dir in lexical order. seen holds
// resolved directory paths so symlink cycles terminate.
func walk(dir string, seen map[string]bool, visit func(string)) {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil || seen[real] {
		return
	}
	seen[real] = true
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		// Stat rather than e.Type() so links are resolved.
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if info.IsDir() {
			walk(p, seen, visit)
			continue
		}
		visit(p)
	}
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, SuffixGzip):
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("read log file %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	case strings.HasSuffix(path, SuffixZstd):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("read log file %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read log file %s: %w", path, err)
		}
	}
}
