package adapt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradedInitialLevels_LinearGrading(t *testing.T) {
	// GIVEN the block-wing seeding: levels 2..5 over a 30-unit span
	levels, err := GradedInitialLevels([]float64{0, 10, 15, 30}, 30, 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN levels grade down from the span root to the tip
	// (2 + 3*(1 - y/30), truncated)
	assert.Equal(t, []int{5, 4, 3, 2}, levels)
}

func TestGradedInitialLevels_ClampsOutOfRangeCoordinates(t *testing.T) {
	levels, err := GradedInitialLevels([]float64{-5, 100}, 30, 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, []int{5, 2}, levels)
}

func TestGradedInitialLevels_FlatWhenLevelsEqual(t *testing.T) {
	levels, err := GradedInitialLevels([]float64{0, 15, 30}, 30, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, []int{3, 3, 3}, levels)
}

func TestGradedInitialLevels_InvalidArguments(t *testing.T) {
	if _, err := GradedInitialLevels([]float64{0}, 0, 2, 5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero span: expected ErrInvalidInput, got %v", err)
	}
	if _, err := GradedInitialLevels([]float64{0}, 30, 5, 2); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("max below min: expected ErrInvalidInput, got %v", err)
	}
	if _, err := GradedInitialLevels([]float64{0}, 30, -1, 2); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative min: expected ErrInvalidInput, got %v", err)
	}
}
