package billing

// DefaultLateCancellationFine is charged per same-day cancellation or marked absence.
const DefaultLateCancellationFine = 100.0

type Policy struct {
	LateCancellationFine float64
}

func DefaultPolicy() Policy {
	return Policy{LateCancellationFine: DefaultLateCancellationFine}
}
