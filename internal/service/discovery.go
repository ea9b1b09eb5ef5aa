// Package service holds the migration-guard building blocks: file discovery,
// naming validation and forbidden-pattern scanning. Each service is built once
// from configuration and is read-only afterwards.
//
// Import Path: migguard.io/guard/internal/service
package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"migguard.io/guard/internal/config"
	"migguard.io/guard/internal/domain"
	apperrors "migguard.io/guard/internal/pkg/errors"
	"migguard.io/guard/internal/pkg/logger"
)

// Discovery finds candidate migration files under a repository root.
type Discovery struct {
	candidates []string
	extensions map[string]struct{}
	exclude    []string
}

// NewDiscovery creates a Discovery from the guard configuration.
func NewDiscovery(cfg config.GuardConfig) (*Discovery, error) {
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, apperrors.New(apperrors.CodeConfigInvalid, "invalid exclude glob").
				WithParams(map[string]interface{}{"glob": pattern})
		}
	}

	return &Discovery{
		candidates: append([]string(nil), cfg.Candidates...),
		extensions: lo.SliceToMap(cfg.Extensions, func(ext string) (string, struct{}) {
			return strings.ToLower(ext), struct{}{}
		}),
		exclude: append([]string(nil), cfg.Exclude...),
	}, nil
}

// Discover returns the deduplicated, path-sorted set of migration files.
// Candidates that do not exist are skipped without error.
func (d *Discovery) Discover(root string) ([]domain.MigrationFile, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, apperrors.ErrDiscoveryf(root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, apperrors.ErrDiscoveryf(absRoot, err)
	}
	if !info.IsDir() {
		return nil, apperrors.ErrDiscoveryf(absRoot, apperrors.ErrNotDirectory)
	}

	var paths []string
	for _, candidate := range d.candidates {
		paths = append(paths, d.collect(filepath.Join(absRoot, filepath.FromSlash(candidate)))...)
	}

	files := make([]domain.MigrationFile, 0, len(paths))
	for _, p := range lo.Uniq(paths) {
		file, err := newMigrationFile(absRoot, p)
		if err != nil {
			return nil, apperrors.ErrDiscoveryf(absRoot, err)
		}
		if d.excluded(file.RelPath) {
			logger.Debug("Excluded migration file", zap.String("file", file.RelPath))
			continue
		}
		files = append(files, file)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// collect returns the allowed files named by one candidate location.
func (d *Discovery) collect(location string) []string {
	info, err := os.Stat(location)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Skipping unreadable candidate", zap.String("path", location), zap.Error(err))
		}
		return nil
	}

	if info.Mode().IsRegular() {
		if d.allowed(location) {
			return []string{filepath.Clean(location)}
		}
		return nil
	}
	if !info.IsDir() {
		return nil
	}

	// A symlinked candidate directory is walked through its target; results
	// keep the candidate path so lineage and display stay repo-relative.
	walkRoot, err := filepath.EvalSymlinks(location)
	if err != nil {
		logger.Warn("Skipping unresolvable candidate", zap.String("path", location), zap.Error(err))
		return nil
	}

	var out []string
	_ = filepath.WalkDir(walkRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Skipping unreadable path", zap.String("path", path), zap.Error(err))
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !d.allowed(path) {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			// Linked files count; linked directories are not walked.
			target, statErr := os.Stat(path)
			if statErr != nil || !target.Mode().IsRegular() {
				return nil
			}
		} else if !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return nil
		}
		out = append(out, filepath.Join(location, rel))
		return nil
	})
	return out
}

func (d *Discovery) allowed(path string) bool {
	_, ok := d.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func (d *Discovery) excluded(relPath string) bool {
	for _, pattern := range d.exclude {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}

func newMigrationFile(absRoot, path string) (domain.MigrationFile, error) {
	rel, err := filepath.Rel(absRoot, path)
	if err != nil {
		return domain.MigrationFile{}, fmt.Errorf("relative path for %s: %w", path, err)
	}
	return domain.MigrationFile{
		Path:    path,
		RelPath: filepath.ToSlash(rel),
		Ext:     strings.ToLower(filepath.Ext(path)),
	}, nil
}
