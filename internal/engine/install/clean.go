package install

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/pakt/internal/adapters/config"
	"go.trai.ch/zerr"
)

// clean removes install-folder entries matching the patterns listed in the
// clean marker file. Lines are glob patterns matched against entry base
// names at any depth; blank lines and # comments are skipped.
func (i *Installer) clean() error {
	markerPath := filepath.Join(i.cfg.Cwd, config.CleanFilename)
	patterns, err := readCleanPatterns(markerPath)
	if err != nil {
		return err
	}
	if len(patterns) == 0 {
		return nil
	}

	folder := i.cfg.ModulesFolder(i.registryName)
	var doomed []string
	err = filepath.Walk(folder, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		base := filepath.Base(path)
		for _, pattern := range patterns {
			matched, matchErr := filepath.Match(pattern, base)
			if matchErr != nil {
				return zerr.With(zerr.Wrap(matchErr, "invalid clean pattern"), "pattern", pattern)
			}
			if matched {
				doomed = append(doomed, path)
				if info.IsDir() {
					return filepath.SkipDir
				}
				break
			}
		}
		return nil
	})
	if err != nil {
		return zerr.Wrap(err, "failed to scan install folder")
	}

	for _, path := range doomed {
		if err := os.RemoveAll(path); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to clean entry"), "path", path)
		}
	}

	i.reporter.Info("removed " + strconv.Itoa(len(doomed)) + " entries")
	return nil
}

func readCleanPatterns(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // marker path is rooted in cwd
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read clean marker"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read clean marker")
	}
	return patterns, nil
}
