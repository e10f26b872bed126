package paper

import (
	"errors"
	"testing"
)

func TestValidateAddition(t *testing.T) {
	tests := []struct {
		name       string
		currentSum int
		newMark    int
		budget     int
		wantErr    error
	}{
		{name: "fits exactly", currentSum: 12, newMark: 8, budget: 20, wantErr: nil},
		{name: "under budget", currentSum: 5, newMark: 5, budget: 20, wantErr: nil},
		{name: "one over", currentSum: 12, newMark: 9, budget: 20, wantErr: ErrBudgetExceeded},
		{name: "full paper rejects any mark", currentSum: 20, newMark: 1, budget: 20, wantErr: ErrBudgetExceeded},
		{name: "zero mark", currentSum: 0, newMark: 0, budget: 20, wantErr: ErrIncompleteField},
		{name: "negative mark", currentSum: 0, newMark: -3, budget: 20, wantErr: ErrIncompleteField},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAddition(tc.currentSum, tc.newMark, tc.budget)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ValidateAddition(%d,%d,%d) = %v, want %v", tc.currentSum, tc.newMark, tc.budget, err, tc.wantErr)
			}
		})
	}
}

func TestValidateFinal(t *testing.T) {
	tests := []struct {
		name       string
		currentSum int
		budget     int
		wantErr    error
	}{
		{name: "exact", currentSum: 20, budget: 20, wantErr: nil},
		{name: "incomplete", currentSum: 19, budget: 20, wantErr: ErrBudgetMismatch},
		{name: "empty paper", currentSum: 0, budget: 20, wantErr: ErrBudgetMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFinal(tc.currentSum, tc.budget)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ValidateFinal(%d,%d) = %v, want %v", tc.currentSum, tc.budget, err, tc.wantErr)
			}
		})
	}
}
