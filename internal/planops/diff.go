package planops

import (
	"encoding/json"
	"fmt"

	"github.com/wI2L/jsondiff"

	"alcyxob/training-planner/internal/domain"
)

// Diff returns the RFC 6902 patch turning before into after, as serialized on the wire.
func Diff(before, after []domain.TrainingWeek) ([]domain.PatchOp, error) {
	patch, err := jsondiff.Compare(before, after)
	if err != nil {
		return nil, fmt.Errorf("planops: diff: %w", err)
	}
	ops := []domain.PatchOp{}
	if len(patch) == 0 {
		return ops, nil
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("planops: encode patch: %w", err)
	}
	if err := json.Unmarshal(raw, &ops); err != nil {
		return nil, fmt.Errorf("planops: decode patch: %w", err)
	}
	return ops, nil
}
