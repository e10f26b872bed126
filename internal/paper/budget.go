package paper

// Budget validation is pure and integer-only. The running sum is held
// server-side by the Draft, never trusted from a client.

// ValidateAddition rejects an addition the moment it would push the
// running sum past the budget, so an author is warned before writing
// more questions against a full paper.
func ValidateAddition(currentSum, newMark, budget int) error {
	if newMark <= 0 {
		return ErrIncompleteField
	}
	if currentSum+newMark > budget {
		return ErrBudgetExceeded
	}
	return nil
}

// ValidateFinal requires exact equality at finalize time; a sum below
// budget means the paper is incomplete.
func ValidateFinal(currentSum, budget int) error {
	if currentSum != budget {
		return ErrBudgetMismatch
	}
	return nil
}
