// Package validation provides input validation for navkit configuration and
// decoded routes.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Decoded routes are checked
// with struct tags; configuration sections use the programmatic validator.
//
// # Struct Tag Validation
//
//	type ProfileRoute struct {
//	    UserID string `json:"user_id" validate:"required,uuid"`
//	}
//	err := validation.Validate(route)
//
// The custom tag "route_id" accepts identifiers made of letters, digits and
// the characters "_", "-", "." and "/", starting with a letter.
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.OneOf("router.default_style", cfg.DefaultStyle, []string{"push", "present"})
//	err := v.Validate()
package validation
