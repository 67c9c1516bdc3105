package workflow

import (
	"fmt"
	"strings"

	"collate/internal/config"
)

// Stage names a batch operation.
type Stage string

const (
	StageIngest      Stage = "ingest"
	StageStandardize Stage = "standardize"
	StageReconcile   Stage = "reconcile"
	StagePatch       Stage = "patch"
	StageVerify      Stage = "verify"
	StageRun         Stage = "run"
	StageBackfill    Stage = "backfill"
)

// Stages lists every stage in pipeline order.
func Stages() []Stage {
	return []Stage{StageIngest, StageStandardize, StageReconcile, StagePatch, StageVerify, StageRun, StageBackfill}
}

// ParseStage resolves a stage name.
func ParseStage(name string) (Stage, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, stage := range Stages() {
		if string(stage) == name {
			return stage, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q", name)
}

// source returns the folder whose documents drive the stage.
func (s Stage) source(f config.Folders) string {
	switch s {
	case StageIngest:
		return f.Raw
	case StageStandardize:
		return f.Original
	case StageReconcile, StageRun:
		return f.Candidate
	case StagePatch:
		return f.Reconciled
	case StageVerify:
		return f.Reference
	default:
		return ""
	}
}

// skipsFinished reports whether names present in the finished folder are
// left alone when no explicit names are given.
func (s Stage) skipsFinished() bool {
	return s == StageReconcile || s == StageRun
}

// digested reports whether the stage records input digests to skip
// unchanged documents on later runs.
func (s Stage) digested() bool {
	switch s {
	case StageIngest, StageStandardize, StageReconcile, StageRun:
		return true
	default:
		return false
	}
}
