package plugin

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// SubdirName is the conventional plugin directory name appended to
// each library prefix.
const SubdirName = "frei0r-1"

// EnvPath names the environment variable holding a colon-separated
// plugin search path that overrides the built-in directories.
const EnvPath = "FREI0R_PATH"

// Directories resolves the ordered plugin search path: FREI0R_PATH if
// set, otherwise the conventional user and system directories. A
// non-empty vendor restricts the conventional directories to that
// vendor's subdirectory. On a name clash during scanning, a plugin
// from an earlier directory takes precedence over a later one.
func Directories(vendor string) []string {
	if env := os.Getenv(EnvPath); env != "" {
		var dirs []string
		for _, d := range strings.Split(env, ":") {
			if d != "" {
				dirs = append(dirs, d)
			}
		}
		return dirs
	}

	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "."+SubdirName))
	}
	dirs = append(dirs,
		filepath.Join("/usr/local/lib", SubdirName),
		filepath.Join("/usr/lib", SubdirName),
	)
	if vendor != "" {
		for i, d := range dirs {
			dirs[i] = filepath.Join(d, vendor)
		}
	}
	return dirs
}

// Scanner discovers and loads plugins from a set of directories. Load
// failures are logged and skipped: one broken shared object never
// aborts a scan.
type Scanner struct {
	log zerolog.Logger
}

// NewScanner creates a scanner that discards its log output.
func NewScanner() *Scanner {
	return NewScannerWithLogger(zerolog.Nop())
}

// NewScannerWithLogger creates a scanner reporting skipped files and
// shadowed duplicates to the given logger.
func NewScannerWithLogger(log zerolog.Logger) *Scanner {
	return &Scanner{log: log}
}

// ScanAll walks the directories in order, loads every *.so file, and
// returns the loaded plugins keyed by their declared name. The first
// plugin seen under a name wins; later duplicates are closed and
// skipped. Missing or unreadable directories are skipped silently.
func (s *Scanner) ScanAll(dirs []string) map[string]*Plugin {
	found := make(map[string]*Plugin)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.log.Debug().Str("dir", dir).Err(err).Msg("skipping plugin directory")
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".so") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			p, err := Open(path)
			if err != nil {
				s.log.Warn().Str("path", path).Err(err).Msg("skipping broken plugin")
				continue
			}
			if _, dup := found[p.Name()]; dup {
				s.log.Debug().Str("path", path).Str("name", p.Name()).
					Msg("plugin shadowed by earlier directory")
				_ = p.Close()
				continue
			}
			s.log.Debug().Str("path", path).Str("name", p.Name()).Msg("loaded plugin")
			found[p.Name()] = p
		}
	}
	return found
}

// ScanDefault scans the conventional search path, see Directories.
func (s *Scanner) ScanDefault(vendor string) map[string]*Plugin {
	return s.ScanAll(Directories(vendor))
}
