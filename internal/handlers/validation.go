package handlers

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// exporterCodePattern matches IHCAFE exporter codes such as "048" or "E112".
var exporterCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)

func validateExporterCode(fl validator.FieldLevel) bool {
	return exporterCodePattern.MatchString(fl.Field().String())
}

// RegisterValidators adds the custom binding tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("exportercode", validateExporterCode)
}
