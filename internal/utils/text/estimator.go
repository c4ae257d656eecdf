package text

// unitDivisor is the approximate number of bytes per model token.
// The 4-bytes-per-token heuristic is a rough average for Latin text; exact
// tokenizer fidelity is intentionally not a goal here. Budgets that depend on
// this estimate should leave headroom accordingly.
const unitDivisor = 4

// EstimateUnits approximates how many model tokens ("units") the given text
// consumes. The estimate is deterministic, has no side effects, and is
// monotonic in input length: appending text never decreases the result.
// Non-empty input always estimates to at least 1 unit.
//
// Both the chunker and the summarizer use this same function, so chunk budgets
// and reduce-recursion decisions are consistent with each other.
func EstimateUnits(text string) int {
	if len(text) == 0 {
		return 0
	}
	units := len(text) / unitDivisor
	if units == 0 {
		units = 1
	}
	return units
}
