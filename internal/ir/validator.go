package ir

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	nodeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// validatorInstance builds the shared *validator.Validate used to check
// parsed node shape, registering a custom node_id tag: a package-level
// singleton, built once.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("node_id", func(fl validator.FieldLevel) bool {
			return nodeIDPattern.MatchString(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}
