package validator

// Validator checks request shapes at the HTTP boundary before they reach
// the usecase layer.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}
