package form

// Outcome describes what a submit attempt did.
type Outcome struct {
	// Allowed is CanSubmit at the time of the attempt.
	Allowed bool `json:"allowed"`
	// Sent is always false: submission only suppresses default navigation.
	Sent bool `json:"sent"`
}

// Submit handles a form submission. There is no backend, so it only reports
// whether submission would have been allowed.
func Submit(d Data) Outcome {
	return Outcome{Allowed: CanSubmit(d)}
}
