package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// New returns a configured validator with custom struct-level validation
// registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// the claimed order total must equal the sum of quantity*price over the
	// line items
	v.RegisterStructValidation(createOrderStructValidation, CreateOrderRequest{})

	return v
}

// createOrderStructValidation checks the item sum against Total using decimal
// arithmetic so float noise cannot pass or fail a checkout by a fraction of a
// cent.
func createOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateOrderRequest)

	sum := decimal.Zero
	for _, it := range req.Items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}

	if !sum.Equal(decimal.NewFromFloat(req.Total)) {
		sl.ReportError(req.Total, "Total", "total", "total_mismatch", "")
	}
}
