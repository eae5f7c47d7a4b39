package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainEvaluation = "horizon/evaluation/v1"
	DomainOutcome    = "horizon/outcome/v1"
	DomainResult     = "horizon/result/v1"
	DomainConstants  = "horizon/constants/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// EvaluationID computes the content-addressed ID of one operation call
// within a run. It is stable across replays given the same inputs.
func EvaluationID(runID, operation string, args IRObject, seq int64) (string, error) {
	obj := IRObject{
		"run_id":    IRString(runID),
		"operation": IRString(operation),
		"args":      args,
		"seq":       IRInt(seq),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("EvaluationID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainEvaluation, canonical), nil
}

// OutcomeID computes the content-addressed ID of an evaluation's outcome.
func OutcomeID(evaluationID, outcomeCase string, result IRObject, seq int64) (string, error) {
	obj := IRObject{
		"evaluation_id": IRString(evaluationID),
		"case":          IRString(outcomeCase),
		"result":        result,
		"seq":           IRInt(seq),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("OutcomeID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainOutcome, canonical), nil
}

// ResultDigest hashes an outcome's case and result only. Two evaluations
// that agree bit for bit have equal digests regardless of run or seq.
func ResultDigest(outcomeCase string, result IRObject) (string, error) {
	canonical, err := MarshalCanonical(IRObject{
		"case":   IRString(outcomeCase),
		"result": result,
	})
	if err != nil {
		return "", fmt.Errorf("ResultDigest: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainResult, canonical), nil
}

// ConstantsHash identifies a constant table by its values.
func ConstantsHash(fields map[string]float64) (string, error) {
	obj := make(IRObject, len(fields))
	for k, v := range fields {
		obj[k] = IRFloat(v)
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ConstantsHash: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainConstants, canonical), nil
}
