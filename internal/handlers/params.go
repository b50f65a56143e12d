package handlers

import (
	"net/http"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/errs"
)

// Query parameter parsers. Absent parameters come back nil; present but
// malformed ones fail with a ValidationError naming the parameter.

func queryString(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	v := r.URL.Query().Get(name)
	return &v
}

func queryDate(r *http.Request, name string) (*civil.Date, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(v)
	if err != nil {
		return nil, errs.NewValidationError("invalid date for " + name + ": " + v)
	}
	return &d, nil
}

func queryDecimal(r *http.Request, name string) (*decimal.Decimal, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, errs.NewValidationError("invalid number for " + name + ": " + v)
	}
	return &d, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.NewValidationError("invalid integer for " + name + ": " + v)
	}
	return n, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errs.NewValidationError("invalid boolean for " + name + ": " + v)
	}
	return &b, nil
}
