package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rutasloja/rutas-backend/internal/app/model"
)

// RegisterValidators adds the domain binding tags to gin's validator:
//
//	visibility     PUBLIC or PRIVATE, any case
//	favorite_type  FAV, PEND or VISIT, any case
//
// Empty strings pass; pair with "required" when the field is mandatory.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("visibility", validateVisibility); err != nil {
		return err
	}
	return v.RegisterValidation("favorite_type", validateFavoriteType)
}

func validateVisibility(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, ok := model.ParseVisibility(s)
	return ok
}

func validateFavoriteType(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, ok := model.ParseFavoriteType(s)
	return ok
}

// ValidationErrors flattens binding errors into field -> tag for the
// VALIDATION_INVALID_INPUT response.
func ValidationErrors(err error) (map[string]string, bool) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields, true
}
