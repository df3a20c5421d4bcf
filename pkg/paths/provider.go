// =============================================================================
// Order Sheet - File Path Provider
// =============================================================================
//
// This package resolves workbook file names to absolute paths inside the data
// directory, and serializes writers per file. Every catalog and ledger
// operation is a full read-modify-write of one workbook, so two commands
// touching the same file must never interleave; the provider hands out one
// mutex per resolved path.
//
// DATA DIRECTORY RESOLUTION:
//   1. Explicit directory passed by the caller (normally from configuration,
//      which itself honors the ORDERSHEET_DATA_DIR environment override).
//   2. Fallback: ~/Documents/Boyarskoe, the fixed shared documents location
//      the workbooks have always lived in.
//
// =============================================================================

package paths

import (
	"os"
	"path/filepath"
	"sync"
)

// DefaultDirName is the directory under the user's documents folder where the
// workbooks live when no explicit data directory is configured.
const DefaultDirName = "Boyarskoe"

// Provider resolves workbook file names to absolute paths and owns the
// per-file write locks.
type Provider struct {
	dataDir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewProvider creates a Provider rooted at dataDir. An empty dataDir falls
// back to the default documents location.
func NewProvider(dataDir string) *Provider {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	return &Provider{
		dataDir: dataDir,
		locks:   make(map[string]*sync.Mutex),
	}
}

// DefaultDataDir returns the fixed shared documents path used when nothing is
// configured. It degrades to the current directory when the home directory
// cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", DefaultDirName)
	}
	return filepath.Join(home, "Documents", DefaultDirName)
}

// DataDir returns the resolved data directory.
func (p *Provider) DataDir() string {
	return p.dataDir
}

// Path resolves a workbook file name to its absolute path inside the data
// directory.
func (p *Provider) Path(fileName string) string {
	return filepath.Join(p.dataDir, fileName)
}

// EnsureDataDir creates the data directory if it does not exist.
func (p *Provider) EnsureDataDir() error {
	return os.MkdirAll(p.dataDir, 0o755)
}

// Lock acquires the write lock for a file and returns the unlock function.
// Callers hold the lock across the whole read-modify-write cycle:
//
//	unlock := provider.Lock(fileName)
//	defer unlock()
func (p *Provider) Lock(fileName string) func() {
	key := filepath.Clean(p.Path(fileName))

	p.mu.Lock()
	l, ok := p.locks[key]
	if !ok {
		l = &sync.Mutex{}
		p.locks[key] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}
