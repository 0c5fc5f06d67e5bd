package store

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	slugPattern  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	indexPattern = regexp.MustCompile(`\[\d+\]`)
)

// fieldMessages overrides the generic message for specific entity fields.
var fieldMessages = map[string]string{
	"Recipe.CookingTime":         "minimum cooking time is 1 minute",
	"Recipe.Ingredients.Amount":  "minimum ingredient amount in a recipe is 1",
	"IngredientForRecipe.Amount": "minimum ingredient amount in a recipe is 1",
	"Tag.Slug":                   "may only contain letters, digits, hyphens and underscores",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// validateStruct runs the struct's validate tags and converts the first
// failure into a *ValidationError. When fields are given only those are checked.
func validateStruct(v *validator.Validate, entity string, value any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.StructPartial(value, fields...)
	} else {
		err = v.Struct(value)
	}
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return &ValidationError{Entity: entity, Message: err.Error()}
	}

	fe := validationErrs[0]
	return &ValidationError{
		Entity:  entity,
		Field:   fieldName(fe),
		Message: fieldMessage(fe),
	}
}

func fieldName(fe validator.FieldError) string {
	// "Recipe.Ingredients[0].Amount" -> "Ingredients[0].Amount"
	ns := fe.StructNamespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.StructField()
}

func fieldMessage(fe validator.FieldError) string {
	key := indexPattern.ReplaceAllString(fe.StructNamespace(), "")
	if msg, ok := fieldMessages[key]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "slug":
		return "must be a valid slug"
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}
