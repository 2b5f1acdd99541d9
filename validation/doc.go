// Package validation validates structs using go-playground/validator tags
// and reports failures as *errors.AppError with per-field details.
//
//	type User struct {
//	    Name string `validate:"required,word"`
//	}
//	err := validation.Validate(u)
//
// Besides the built-in tags, the "word" tag accepts a single token without
// whitespace.
package validation
