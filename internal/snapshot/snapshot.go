// Package snapshot preserves copies of the rendered output directory so a
// bad render can be rolled back.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cameronsjo/stevedore/internal/fileutil"
)

const (
	// Prefix is the prefix for snapshot directory names.
	Prefix = "snapshot-"
	// DateFormat includes nanoseconds to prevent same-second collisions.
	DateFormat = "20060102-150405.000000000"
	// MaxSnapshots is the maximum number of snapshots to retain.
	MaxSnapshots = 10
)

// Info holds metadata about a snapshot.
type Info struct {
	Name      string
	Path      string
	Created   time.Time
	FileCount int
}

// Create copies the current output directory into a new snapshot under
// snapDir. Returns the snapshot name, or an empty string if the output
// directory is missing or empty (nothing to preserve).
func Create(snapDir, outDir string) (string, error) {
	if !dirHasContent(outDir) {
		return "", nil
	}

	name := Prefix + time.Now().Format(DateFormat)
	path := filepath.Join(snapDir, name)

	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("create snapshot directory: %w", err)
	}

	if err := fileutil.CopyDir(outDir, path); err != nil {
		// Clean up partial snapshot on error
		if cleanupErr := os.RemoveAll(path); cleanupErr != nil {
			return "", fmt.Errorf("copy output to snapshot: %w (cleanup also failed: %v)", err, cleanupErr)
		}
		return "", fmt.Errorf("copy output to snapshot: %w", err)
	}

	if err := Cleanup(snapDir); err != nil {
		// Retention failures shouldn't fail the render
		fmt.Fprintf(os.Stderr, "warning: failed to cleanup old snapshots: %v\n", err)
	}

	return name, nil
}

// List returns available snapshots sorted by date (newest first).
func List(snapDir string) ([]Info, error) {
	entries, err := os.ReadDir(snapDir)
	if os.IsNotExist(err) {
		return nil, nil // No snapshots directory means no snapshots
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshots directory: %w", err)
	}

	var snapshots []Info
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), Prefix) {
			continue
		}

		path := filepath.Join(snapDir, entry.Name())

		created, err := time.Parse(DateFormat, strings.TrimPrefix(entry.Name(), Prefix))
		if err != nil {
			// Fall back to filesystem time for unparseable names
			info, infoErr := entry.Info()
			if infoErr != nil {
				continue
			}
			created = info.ModTime()
		}

		snapshots = append(snapshots, Info{
			Name:      entry.Name(),
			Path:      path,
			Created:   created,
			FileCount: countFiles(path),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Created.After(snapshots[j].Created)
	})

	return snapshots, nil
}

// Restore replaces the output directory with the named snapshot's
// contents. The swap is atomic: the snapshot is copied to a temp
// directory next to the output directory first, then renamed into place,
// so a failure partway never leaves a half-restored output.
func Restore(snapDir, name, outDir string) error {
	snapshotPath := filepath.Join(snapDir, name)
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		return fmt.Errorf("snapshot not found: %s", name)
	}

	// Unique suffixes prevent races between concurrent restores
	restoreID := uuid.New().String()[:8]
	tempDir := outDir + ".restore-temp-" + restoreID
	oldDir := outDir + ".restore-old-" + restoreID

	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return fmt.Errorf("create temp restore directory: %w", err)
	}

	if err := fileutil.CopyDir(snapshotPath, tempDir); err != nil {
		os.RemoveAll(tempDir)
		return fmt.Errorf("copy snapshot to temp: %w", err)
	}

	_, statErr := os.Stat(outDir)
	outputExists := statErr == nil

	if outputExists {
		if err := os.Rename(outDir, oldDir); err != nil {
			os.RemoveAll(tempDir)
			return fmt.Errorf("rename current output: %w", err)
		}
	}

	if err := os.Rename(tempDir, outDir); err != nil {
		// Put the old output back on failure
		if outputExists {
			if recoverErr := os.Rename(oldDir, outDir); recoverErr != nil {
				os.RemoveAll(tempDir)
				return fmt.Errorf("rename temp to output: %w (recovery also failed: %v)", err, recoverErr)
			}
		}
		os.RemoveAll(tempDir)
		return fmt.Errorf("rename temp to output: %w", err)
	}

	if outputExists {
		os.RemoveAll(oldDir)
	}

	return nil
}

// Cleanup removes snapshots beyond the retention limit.
// Continues deleting even if individual removals fail, returning a summary of all errors.
func Cleanup(snapDir string) error {
	snapshots, err := List(snapDir)
	if err != nil {
		return err
	}

	if len(snapshots) <= MaxSnapshots {
		return nil
	}

	var errs []string
	for _, snap := range snapshots[MaxSnapshots:] {
		if err := os.RemoveAll(snap.Path); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", snap.Name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to remove %d snapshot(s): %s", len(errs), strings.Join(errs, "; "))
	}

	return nil
}

// dirHasContent checks if a directory exists and has at least one entry.
func dirHasContent(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	return len(entries) > 0
}

// countFiles counts the number of files in a directory tree.
func countFiles(dir string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			count++
		}
		return nil
	})
	return count
}
