package diagram

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
)

// Snapshot queues a labeled snapshot. The queue is written by WriteSnapshots,
// which Run calls at the end of each Draw. Safe to call from Update or Draw.
func (e *Editor) Snapshot(label string) {
	e.snapshots = append(e.snapshots, label)
}

// PendingSnapshots returns the number of queued snapshot labels.
func (e *Editor) PendingSnapshots() int {
	return len(e.snapshots)
}

// WriteSnapshots writes img once per queued label as a PNG under
// Config.SnapshotDir, then empties the queue. Files are named
// diagram-<stamp>-<n>-<slug>.png where n is the position in the queue, so
// repeated labels never overwrite each other. Returns the written paths.
func (e *Editor) WriteSnapshots(img image.Image) ([]string, error) {
	if len(e.snapshots) == 0 {
		return nil, nil
	}
	defer func() { e.snapshots = e.snapshots[:0] }()

	dir := e.cfg.SnapshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: mkdir %s: %w", dir, err)
	}

	stamp := time.Now().Format("20060102-150405")
	paths := make([]string, 0, len(e.snapshots))
	for i, label := range e.snapshots {
		name := fmt.Sprintf("diagram-%s-%02d-%s.png", stamp, i, snapshotSlug(label))
		path := filepath.Join(dir, name)
		if err := savePNG(path, img); err != nil {
			return paths, fmt.Errorf("snapshot %q: %w", label, err)
		}
		e.log.Debug("snapshot", zap.String("label", label), zap.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}

// savePNG encodes img into a temporary file next to path and renames it, so
// a reader never sees a partial snapshot.
func savePNG(path string, img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// snapshotSlug lowercases label and joins its letter and digit runs with
// dashes. A label without any yields "snapshot".
func snapshotSlug(label string) string {
	words := strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) || r > unicode.MaxASCII
	})
	if len(words) == 0 {
		return "snapshot"
	}
	return strings.Join(words, "-")
}
