package settings

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CleaningService/pkg/txmanager"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"exclusion", &pq.Error{Code: pgExclusionViolation, Constraint: "channel_rules_no_overlap"}, ErrOverlap},
		{"unique", &pq.Error{Code: pgUniqueViolation, Constraint: "special_areas_code_key"}, ErrDuplicate},
		{"other driver error", &pq.Error{Code: "40001"}, ErrExecQuery},
		{"plain error", errors.New("connection reset"), ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, writeError("op", tt.err), tt.want)
		})
	}
}

func TestWriteError_SerializationFailureStaysRetryable(t *testing.T) {
	err := writeError("CreateChannelRule", &pq.Error{Code: "40001"})
	assert.True(t, txmanager.IsRetryable(err))
}
