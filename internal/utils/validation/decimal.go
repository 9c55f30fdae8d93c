package validation

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// Register installs the decimal type func and the dgt, dgte and cents tags on gin's
// binding validator. Safe to call more than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		err = RegisterDecimal(v)
	})
	return err
}

// RegisterDecimal teaches v to validate decimal.Decimal fields.
//
//	dgt=0   strictly greater than the parameter
//	dgte=0  greater than or equal to the parameter
//	cents   no digits below the minor currency unit
func RegisterDecimal(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation("dgt", compare(func(d, p decimal.Decimal) bool { return d.GreaterThan(p) })); err != nil {
		return err
	}
	if err := v.RegisterValidation("dgte", compare(func(d, p decimal.Decimal) bool { return d.GreaterThanOrEqual(p) })); err != nil {
		return err
	}
	return v.RegisterValidation("cents", func(fl validator.FieldLevel) bool {
		d, ok := fieldDecimal(fl)
		if !ok {
			return false
		}
		return d.Equal(d.Round(2))
	})
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func compare(ok func(d, param decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, parsed := fieldDecimal(fl)
		if !parsed {
			return false
		}
		p, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return ok(d, p)
	}
}

// fieldDecimal reads the field after the custom type func has turned it into a string.
func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		d, err := decimal.NewFromString(field.String())
		return d, err == nil
	case reflect.Ptr:
		if field.IsNil() {
			return decimal.Zero, true
		}
		if d, ok := field.Elem().Interface().(decimal.Decimal); ok {
			return d, true
		}
	}
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d, true
	}
	return decimal.Zero, false
}
