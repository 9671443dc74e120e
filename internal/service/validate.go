package service

import "github.com/go-playground/validator/v10"

var inputValidator = validator.New()

func validEmail(value string) bool {
	return inputValidator.Var(value, "required,email") == nil
}
