package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dhamidi/javahl/config"
	"github.com/dhamidi/javahl/java/symbols"
)

func projectOptions(cfg *config.Config) []symbols.ProjectOption {
	return []symbols.ProjectOption{
		symbols.WithInclude(cfg.IncludeOrDefault()...),
		symbols.WithExclude(cfg.Exclude...),
		symbols.WithGitignore(cfg.RespectGitignoreOrDefault()),
	}
}

// loadProject builds a project over roots, falling back to the configured
// source roots. It returns nil when there are none. Files that fail to
// load are logged; the project is still usable.
func loadProject(ctx context.Context, cfg *config.Config, roots []string) (*symbols.Project, error) {
	if len(roots) == 0 {
		roots = cfg.SourceRoots
	}
	if len(roots) == 0 {
		return nil, nil
	}
	project := symbols.NewProject(projectOptions(cfg)...)
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve source root %s: %w", root, err)
		}
		if err := project.AddSourceRoot(ctx, abs); err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			log.Warningf("source root %s: %s", abs, err)
		}
	}
	return project, nil
}
