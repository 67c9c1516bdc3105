package preflight

import (
	"context"
	"sort"

	"collate/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var results []Result

	results = append(results, CheckDirectoryReadable("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	results = append(results, CheckAsset("Catalog glyphs", cfg.AssetPath(cfg.Assets.Catalog), false))
	selectors := make([]string, 0, len(cfg.Assets.VariantTiers))
	for selector := range cfg.Assets.VariantTiers {
		selectors = append(selectors, selector)
	}
	sort.Strings(selectors)
	for _, selector := range selectors {
		results = append(results, CheckAsset("Variant tier "+selector, cfg.AssetPath(cfg.Assets.VariantTiers[selector]), false))
	}
	if cfg.Assets.CharMap != "" {
		results = append(results, CheckAsset("Char map", cfg.AssetPath(cfg.Assets.CharMap), false))
	}
	if cfg.Assets.Equivalence != "" {
		results = append(results, CheckAsset("Equivalence groups", cfg.AssetPath(cfg.Assets.Equivalence), true))
	}

	if Passed(results) {
		results = append(results, CheckAssetsLoad(ctx, cfg))
	}
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
