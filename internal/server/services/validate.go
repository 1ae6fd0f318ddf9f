package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/server/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// User-facing validation messages.
const (
	MsgAllFieldsRequired  = "All fields required"
	MsgCredentialsMissing = "Email and password required"
	MsgInvalidCategory    = "Invalid category"
	MsgInvalidTag         = "Invalid tag"
	MsgInvalidDate        = "Invalid date"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("newstag", func(fl validator.FieldLevel) bool {
		return models.Tag(fl.Field().String()).Valid()
	})
	return v
}

// validateInput runs struct tag validation and turns the result into a
// common.ValidationError. A missing field takes precedence over a bad enum.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return common.NewValidationError(MsgAllFieldsRequired)
		}
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "category":
			return common.NewValidationError(MsgInvalidCategory)
		case "newstag":
			return common.NewValidationError(MsgInvalidTag)
		}
	}
	return common.NewValidationError(MsgAllFieldsRequired)
}

// parseID maps ids that cannot exist in the store to common.ErrorNotFound.
func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", common.ErrorNotFound
	}
	return u.String(), nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, common.NewValidationError(MsgInvalidDate)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
