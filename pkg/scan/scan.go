// pkg/scan/scan.go
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/creativeyann17/tgmedia/pkg/deserialize"
)

// ProgressCallback is called for various progress events
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type         EventType
	FilePath     string
	File         *FileInfo
	Current      int64
	Total        int64
	CurrentBytes uint64
	TotalBytes   uint64
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventFileComplete
	EventComplete
	EventError
)

// Scan inspects every regular file under opts.Dir as a possible serialized
// cache. Nothing is written; each file gets a dry-run deserialization.
func Scan(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("stat '%s': %w", opts.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("'%s': %w", opts.Dir, ErrNotDir)
	}

	matcher, err := newMatcher(opts.Dir, opts.Exclude)
	if err != nil {
		return nil, err
	}

	result := &Result{Dir: opts.Dir}
	entries, totalBytes, err := collect(opts.Dir, matcher, result)
	if err != nil {
		return nil, err
	}
	result.FilesTotal = len(entries)

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:       EventStart,
			Total:      int64(len(entries)),
			TotalBytes: totalBytes,
		})
	}

	var doneBytes uint64
	for i, entry := range entries {
		rel := entry.rel
		fi := inspectFile(opts, rel)
		result.Files = append(result.Files, fi)
		doneBytes += entry.size

		evType := EventFileComplete
		if fi.Error != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", rel, fi.Error))
			evType = EventError
		}
		if progressCb != nil {
			progressCb(ProgressEvent{
				Type:         evType,
				FilePath:     rel,
				File:         &result.Files[len(result.Files)-1],
				Current:      int64(i + 1),
				Total:        int64(len(entries)),
				CurrentBytes: doneBytes,
				TotalBytes:   totalBytes,
			})
		}
	}

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:         EventComplete,
			Current:      int64(len(entries)),
			Total:        int64(len(entries)),
			CurrentBytes: doneBytes,
			TotalBytes:   totalBytes,
		})
	}

	return result, nil
}

// newMatcher compiles the root ignore file (if any) together with extra patterns.
// Returns nil when there is nothing to exclude.
func newMatcher(dir string, patterns []string) (*ignore.GitIgnore, error) {
	ignorePath := filepath.Join(dir, IgnoreFileName)
	if _, err := os.Stat(ignorePath); err == nil {
		m, err := ignore.CompileIgnoreFileAndLines(ignorePath, patterns...)
		if err != nil {
			return nil, fmt.Errorf("compile '%s': %w", ignorePath, err)
		}
		return m, nil
	}
	if len(patterns) == 0 {
		return nil, nil
	}
	return ignore.CompileIgnoreLines(patterns...), nil
}

type fileEntry struct {
	rel  string
	size uint64
}

// collect walks dir and returns the files to inspect with their on-disk sizes
func collect(dir string, matcher *ignore.GitIgnore, result *Result) ([]fileEntry, uint64, error) {
	var entries []fileEntry
	var total uint64

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip inaccessible paths
			result.Errors = append(result.Errors, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if matcher != nil && (matcher.MatchesPath(rel) || matcher.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || rel == IgnoreFileName {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			result.FilesSkipped++
			return nil
		}

		info, err := d.Info()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", rel, err))
			return nil
		}
		total += uint64(info.Size())
		entries = append(entries, fileEntry{rel: rel, size: uint64(info.Size())})
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walk '%s': %w", dir, err)
	}
	return entries, total, nil
}

// inspectFile runs a dry-run deserialization of one file
func inspectFile(opts *Options, rel string) FileInfo {
	fi := FileInfo{Path: rel}

	res, err := deserialize.Deserialize(&deserialize.Options{
		InputPath: filepath.Join(opts.Dir, filepath.FromSlash(rel)),
		DryRun:    true,
		MaxSlices: opts.MaxSlices,
		TempDir:   opts.TempDir,
		Quiet:     true,
	}, nil)
	if err != nil {
		fi.Error = err
		return fi
	}

	fi.Size = res.InputSize
	fi.Format = res.InputFormat
	fi.Slices = res.Scan.Slices
	fi.Parts = len(res.Scan.Parts)
	fi.Stop = res.Scan.Stop.String()
	fi.StreamSize = res.Report.TotalSize
	fi.Trusted = res.Report.Trusted()
	fi.Gaps = len(res.Gaps)
	return fi
}
