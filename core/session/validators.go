package session

import (
	"github.com/go-playground/validator/v10"

	"github.com/DrumilPatell/sms-system/core"
)

var (
	roleTag  = "role"
	roleText = "must be one of: admin, faculty, student"
)

func init() {
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(roleTag, roleText)
}

func roleValidation(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).Valid()
}
