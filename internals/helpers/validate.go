package helper

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct menjalankan validator.v10 pada DTO.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// ValidationMap mengubah validator.ValidationErrors menjadi map
// field → pesan, untuk JsonValidationError.
func ValidationMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], fe.Tag())
	}
	return out
}
