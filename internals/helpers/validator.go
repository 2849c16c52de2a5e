package helper

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"

	"disiplinku_backend/internals/helpers/dbtime"
)

const (
	flexDateTag  = "flexdate"
	flexDateText = "{0} harus berupa tanggal YYYY-MM-DD atau RFC3339"

	requiredTag  = "required"
	requiredText = "{0} wajib diisi"
)

var (
	validate      *validator.Validate
	translator    ut.Translator
	validatorOnce sync.Once
)

// Validator mengembalikan instance validator bersama (thread-safe, cache struct).
func Validator() *validator.Validate {
	validatorOnce.Do(initValidator)
	return validate
}

func initValidator() {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ = uni.GetTranslator("en")

	validate = validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// pakai nama JSON di pesan error, bukan nama field Go
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(flexDateTag, func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		if s == "" {
			return true
		}
		_, err := dbtime.ParseDate(s, nil)
		return err == nil
	})
	registerTranslation(flexDateTag, flexDateText, false)
	registerTranslation(requiredTag, requiredText, true)
}

func registerTranslation(tag, text string, override bool) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ValidationMessages: field (nama JSON) → daftar pesan.
func ValidationMessages(errs validator.ValidationErrors) map[string][]string {
	Validator()
	out := make(map[string][]string, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		if field == "" {
			field = fe.StructField()
		}
		out[field] = append(out[field], fe.Translate(translator))
	}
	return out
}

type normalizer interface{ Normalize() }

// BindAndValidate: parse body → Normalize() (kalau ada) → validasi struct.
// v nil → validator bersama.
func BindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if n, ok := any(dst).(normalizer); ok {
		n.Normalize()
	}
	if v == nil {
		v = Validator()
	}
	return v.Struct(dst)
}
