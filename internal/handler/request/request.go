// Package request holds the parsing helpers shared by the HTTP handlers.
package request

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Bind decodes the JSON body into req and runs its validate tags.
func Bind(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return err
	}
	return validate.Struct(req)
}

// BindQuery decodes query parameters into req and runs its validate tags.
func BindQuery(c *gin.Context, req any) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return err
	}
	return validate.Struct(req)
}

func ID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

// Decimal parses an amount field; empty input yields zero.
func Decimal(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "%s is not a decimal", field)
	}
	return d, nil
}

// OptionalDecimal parses a nullable amount field.
func OptionalDecimal(field string, raw *string) (*decimal.Decimal, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, err := Decimal(field, *raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
