package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/idance/opstools/internal/core/domain"
	"github.com/idance/opstools/internal/core/ports"
)

// maxKeysPerDir caps how many object keys the report prints per directory.
const maxKeysPerDir = 10

// BucketReport renders a human-readable inventory of a bucket: totals,
// objects grouped by top-level directory, and a per-extension breakdown.
type BucketReport struct {
	lister ports.BucketLister
	bucket string
}

func NewBucketReport(lister ports.BucketLister, bucket string) *BucketReport {
	return &BucketReport{lister: lister, bucket: bucket}
}

// Write enumerates the whole bucket and writes the report to w.
func (r *BucketReport) Write(ctx context.Context, w io.Writer) error {
	objects, err := r.lister.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list bucket %s: %w", r.bucket, err)
	}

	if len(objects) == 0 {
		fmt.Fprintf(w, "Bucket %s is empty.\n", r.bucket)
		return nil
	}

	var totalSize int64
	for _, obj := range objects {
		totalSize += obj.Size
	}
	fmt.Fprintf(w, "Found %d objects in bucket %s\n", len(objects), r.bucket)
	fmt.Fprintf(w, "Total size: %.2f MB\n\n", mb(totalSize))

	writeDirectoryGroups(w, objects)
	writeExtensionSummary(w, objects)
	return nil
}

func writeDirectoryGroups(w io.Writer, objects []domain.StorageObject) {
	groups := make(map[string][]domain.StorageObject)
	for _, obj := range objects {
		groups[topDirectory(obj.Key)] = append(groups[topDirectory(obj.Key)], obj)
	}

	dirs := make([]string, 0, len(groups))
	for dir := range groups {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		files := groups[dir]
		fmt.Fprintf(w, "%s/ (%d files)\n", dir, len(files))
		for i, obj := range files {
			if i == maxKeysPerDir {
				fmt.Fprintf(w, "  ... and %d more files\n", len(files)-maxKeysPerDir)
				break
			}
			fmt.Fprintf(w, "  - %s (%.2f MB)\n", obj.Key, mb(obj.Size))
		}
		fmt.Fprintln(w)
	}
}

func writeExtensionSummary(w io.Writer, objects []domain.StorageObject) {
	type stat struct {
		count int
		size  int64
	}
	types := make(map[string]*stat)
	for _, obj := range objects {
		ext := extension(obj.Key)
		if types[ext] == nil {
			types[ext] = &stat{}
		}
		types[ext].count++
		types[ext].size += obj.Size
	}

	exts := make([]string, 0, len(types))
	for ext := range types {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	fmt.Fprintln(w, "File type summary:")
	for _, ext := range exts {
		s := types[ext]
		fmt.Fprintf(w, "  - .%s: %d files (%.2f MB)\n", ext, s.count, mb(s.size))
	}
}

func mb(size int64) float64 {
	return float64(size) / (1024 * 1024)
}

// topDirectory returns the first path segment of key, or "root" for keys
// without a slash.
func topDirectory(key string) string {
	if dir, _, found := strings.Cut(key, "/"); found {
		return dir
	}
	return "root"
}

// extension returns the lowercased extension of key, or "no_extension".
func extension(key string) string {
	idx := strings.LastIndex(key, ".")
	if idx < 0 || idx == len(key)-1 {
		return "no_extension"
	}
	return strings.ToLower(key[idx+1:])
}
