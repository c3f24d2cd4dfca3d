package backend

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// bodyValidator checks request bodies after binding. Titles are checked by
// the repository, which also trims them.
type bodyValidator struct {
	v *validator.Validate
}

func newBodyValidator() *bodyValidator {
	return &bodyValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator
func (b *bodyValidator) Validate(i any) error {
	if err := b.v.Struct(i); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
