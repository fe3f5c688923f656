package request_models

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const TagPurchaseTarget = "purchase_target"

var registerOnce sync.Once

// RegisterBindingValidations installs custom rules on gin's validator engine.
func RegisterBindingValidations() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			RegisterValidations(v)
		}
	})
}

func RegisterValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterStructValidation(purchaseTarget, CreatePaymentRequest{})
}

func purchaseTarget(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreatePaymentRequest)
	if (req.CourseID == nil) == (req.LessonID == nil) {
		sl.ReportError(req.CourseID, "course", "CourseID", TagPurchaseTarget, "")
	}
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
