package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedLine       = errors.New("malformed line")
	ErrUnresolvedVariant   = errors.New("unresolved variant")
	ErrAlignmentUnresolved = errors.New("alignment unresolved")
	ErrPatchIntegrity      = errors.New("patch integrity failure")
	ErrMissingCounterpart  = errors.New("missing counterpart")
	ErrVerifyMismatch      = errors.New("verification mismatch")
	ErrBudgetExhausted     = errors.New("error budget exhausted")
	ErrConfiguration       = errors.New("configuration error")
)

// Code classifies a diagnostic entry. Codes are stable strings shared by the
// log stream and the review store.
type Code string

const (
	CodeMalformedLine       Code = "malformed_line"
	CodeLeadingSelector     Code = "leading_selector"
	CodeUnknownTier         Code = "unknown_tier"
	CodeUnresolvedVariant   Code = "unresolved_variant"
	CodeMissingCounterpart  Code = "missing_counterpart"
	CodeAlignmentAmbiguous  Code = "alignment_ambiguous"
	CodeAlignmentUnresolved Code = "alignment_unresolved"
	CodePatchIntegrity      Code = "patch_integrity"
	CodeLineCountMismatch   Code = "line_count_mismatch"
	CodeCatalogTolerated    Code = "catalog_tolerated"
	CodeVerifyMismatch      Code = "verify_mismatch"
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		if err == nil {
			return errors.New(detail)
		}
		return fmt.Errorf("%s: %w", detail, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// CodeOf maps an error to the diagnostic code of its marker. The second return
// is false for errors that carry no known marker.
func CodeOf(err error) (Code, bool) {
	switch {
	case err == nil:
		return "", false
	case errors.Is(err, ErrMalformedLine):
		return CodeMalformedLine, true
	case errors.Is(err, ErrUnresolvedVariant):
		return CodeUnresolvedVariant, true
	case errors.Is(err, ErrAlignmentUnresolved):
		return CodeAlignmentUnresolved, true
	case errors.Is(err, ErrPatchIntegrity):
		return CodePatchIntegrity, true
	case errors.Is(err, ErrMissingCounterpart):
		return CodeMissingCounterpart, true
	case errors.Is(err, ErrVerifyMismatch):
		return CodeVerifyMismatch, true
	default:
		return "", false
	}
}

// NeedsReview reports whether a document failure should land on the manual
// review list rather than being skipped with a log entry.
func NeedsReview(err error) bool {
	switch {
	case errors.Is(err, ErrAlignmentUnresolved), errors.Is(err, ErrPatchIntegrity), errors.Is(err, ErrVerifyMismatch):
		return true
	default:
		return false
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
