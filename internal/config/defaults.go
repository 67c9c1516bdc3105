package config

const (
	defaultDataDir          = "~/collate/data"
	defaultAssetsDir        = "~/collate/assets"
	defaultLogDir           = "~/.local/share/collate/logs"
	defaultStateDir         = "~/.local/share/collate"
	defaultRawFolder        = "DocxOriTxt0"
	defaultOriginalFolder   = "DocxOriTxt"
	defaultReferenceFolder  = "DocxStdTxt"
	defaultCandidateFolder  = "Text2Page0"
	defaultReconciledFolder = "Text2Page"
	defaultFinishedFolder   = "Text2PageF"
	defaultCatalogAsset     = "qzw.txt"
	defaultCharMapAsset     = "SelfChar2Unicode.txt"
	defaultEquivalenceAsset = "variant_groups.txt"
	defaultErrorBudget      = 100
	defaultNoise            = "<>()*#◦◑32z+,'"
	defaultWorkers          = 1
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

func defaultVariantTiers() map[string]string {
	return map[string]string{
		"1": "variants1.json",
		"2": "variants2.json",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			AssetsDir: defaultAssetsDir,
			LogDir:    defaultLogDir,
			StateDir:  defaultStateDir,
		},
		Folders: Folders{
			Raw:        defaultRawFolder,
			Original:   defaultOriginalFolder,
			Reference:  defaultReferenceFolder,
			Candidate:  defaultCandidateFolder,
			Reconciled: defaultReconciledFolder,
			Finished:   defaultFinishedFolder,
		},
		Assets: Assets{
			Catalog:      defaultCatalogAsset,
			VariantTiers: defaultVariantTiers(),
			CharMap:      defaultCharMapAsset,
			Equivalence:  defaultEquivalenceAsset,
		},
		Align: Align{
			ErrorBudget: defaultErrorBudget,
			Display:     true,
			Noise:       defaultNoise,
		},
		Workflow: Workflow{
			Workers:      defaultWorkers,
			SkipFinished: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
