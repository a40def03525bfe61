package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"claimproc/internal/domain"
)

func TestScoreCompleteness(t *testing.T) {
	tests := []struct {
		name     string
		filled   int
		expected int
		want     domain.Confidence
	}{
		{"all fields filled", 5, 5, domain.ConfidenceHigh},
		{"four of five is exactly 0.8", 4, 5, domain.ConfidenceHigh},
		{"two of five is exactly 0.4", 2, 5, domain.ConfidenceMedium},
		{"three of five", 3, 5, domain.ConfidenceMedium},
		{"one of five", 1, 5, domain.ConfidenceLow},
		{"nothing filled", 0, 5, domain.ConfidenceLow},
		{"zero expected fields", 3, 0, domain.ConfidenceLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreCompleteness(tt.filled, tt.expected))
		})
	}
}

func TestScoreItemCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  domain.Confidence
	}{
		{"many items", 10, domain.ConfidenceHigh},
		{"exactly three items", 3, domain.ConfidenceHigh},
		{"two items", 2, domain.ConfidenceMedium},
		{"exactly one item", 1, domain.ConfidenceMedium},
		{"no items", 0, domain.ConfidenceLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreItemCount(tt.count))
		})
	}
}
