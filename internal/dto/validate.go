package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"birthday-song-service/internal/apperr"
	"birthday-song-service/internal/client"
	"birthday-song-service/internal/generator"
	"birthday-song-service/internal/model"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "style", func(fl validator.FieldLevel) bool {
		return generator.IsStyle(fl.Field().String())
	})
	mustRegister(v, "tone", func(fl validator.FieldLevel) bool {
		for _, t := range generator.Tones() {
			if t == fl.Field().String() {
				return true
			}
		}
		return false
	})
	mustRegister(v, "orderstatus", func(fl validator.FieldLevel) bool {
		return model.OrderStatus(fl.Field().String()).Valid()
	})
	mustRegister(v, "tier", func(fl validator.FieldLevel) bool {
		_, ok := client.LookupTier(fl.Field().String())
		return ok
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func (r *CreateOrderRequest) Validate() error { return check(r) }

func (r *UpdateOrderRequest) Validate() error {
	if err := check(r); err != nil {
		return err
	}
	if r.Empty() {
		return apperr.Validation("Invalid request", apperr.FieldError{
			Path:    "",
			Message: "at least one field must be provided",
		})
	}
	return nil
}

func (r *GenerateLyricsRequest) Validate() error { return check(r) }

func (r *EditLyricsRequest) Validate() error { return check(r) }

func (r *GenerateSongsRequest) Validate() error { return check(r) }

func (r *CreateCheckoutRequest) Validate() error { return check(r) }

func (r *CompleteCheckoutRequest) Validate() error { return check(r) }

func (r *SocialAutofillRequest) Validate() error { return check(r) }

// check runs the struct tags of req and turns failures into field issues.
func check(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	issues := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, apperr.FieldError{
			Path:    fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	return apperr.Validation("Invalid request", issues...)
}

// fieldPath drops the struct name from the namespace: "Req.hobbies[2]" -> "hobbies[2]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	unit := "characters"
	if fe.Kind() == reflect.Slice {
		unit = "items"
	}

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s %s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("must be at most %s %s", fe.Param(), unit)
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	case "style":
		return "must be one of: " + strings.Join(generator.Styles(), ", ")
	case "tone":
		return "must be one of: " + strings.Join(generator.Tones(), ", ")
	case "orderstatus":
		return "is not a known order status"
	case "tier":
		return "is not a known pricing tier"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
