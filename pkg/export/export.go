// =============================================================================
// Order Sheet - Export and Share Collaborators
// =============================================================================
//
// This module copies the regenerated summary plus the raw ledger into the
// export ("Out") folder and hands the copied paths to a share sink. The
// share transport itself (mail client, messenger) lives outside this tool;
// the CLI implementation records a manifest of what was shared with whom.
//
// EXPORT STRATEGY:
//   - Files are copied, not moved: the data directory remains authoritative.
//   - Copies keep their original names so recipients see the familiar files.
//   - Each share run writes a manifest named with a timestamp and a UUID so
//     successive runs never collide.
//
// =============================================================================

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notifier receives short user-facing status messages.
type Notifier interface {
	Notify(message string)
}

// Sharer hands a set of exported files to a recipient.
type Sharer interface {
	ShareFiles(paths []string, recipient string) error
}

// Exporter copies output files into the export directory.
type Exporter struct {
	dir string
	log zerolog.Logger
}

// NewExporter creates an Exporter rooted at dir.
func NewExporter(dir string, log zerolog.Logger) *Exporter {
	return &Exporter{dir: dir, log: log}
}

// Dir returns the export directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Copy copies each source file into the export directory under its own name,
// creating the directory if needed. It returns the destination paths.
func (e *Exporter) Copy(sources ...string) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory %s: %w", e.dir, err)
	}

	var out []string
	for _, src := range sources {
		dst := filepath.Join(e.dir, filepath.Base(src))
		if err := copyFile(src, dst); err != nil {
			return nil, fmt.Errorf("exporting %s: %w", filepath.Base(src), err)
		}
		e.log.Debug().Str("src", src).Str("dst", dst).Msg("file exported")
		out = append(out, dst)
	}
	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// =============================================================================
// CLI IMPLEMENTATIONS
// =============================================================================

// LogNotifier logs notifications; the CLI stand-in for a toast.
type LogNotifier struct {
	Log zerolog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(message string) {
	n.Log.Info().Msg(message)
}

// ManifestSharer records each share run as a manifest file in the export
// directory and logs the file list. Transport to the recipient is handled
// outside the tool.
type ManifestSharer struct {
	Dir string
	Log zerolog.Logger
}

// ShareFiles implements Sharer.
func (s ManifestSharer) ShareFiles(paths []string, recipient string) error {
	if len(paths) == 0 {
		return nil
	}

	name := fmt.Sprintf("share_%s_%s.txt",
		time.Now().Format("20060102_150405"),
		uuid.New().String()[:8])
	manifest := filepath.Join(s.Dir, name)

	var b strings.Builder
	fmt.Fprintf(&b, "Recipient: %s\n", recipient)
	fmt.Fprintf(&b, "Shared:    %s\n", time.Now().Format("2006-01-02 15:04:05"))
	for _, p := range paths {
		fmt.Fprintf(&b, "  %s\n", p)
	}

	if err := os.WriteFile(manifest, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing share manifest: %w", err)
	}

	s.Log.Info().
		Str("recipient", recipient).
		Strs("files", paths).
		Str("manifest", manifest).
		Msg("files handed to share sink")
	return nil
}
