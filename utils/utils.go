package utils

import (
	"strconv"

	"erp-app/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags on a request payload.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ParamID parses a snowflake id from a route parameter.
func ParamID(ctx *fiber.Ctx, name string) (types.SnowflakeID, error) {
	raw := ctx.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return types.SnowflakeID(id), nil
}

// QueryID parses an optional snowflake id from a query parameter; missing
// parameters come back as zero.
func QueryID(ctx *fiber.Ctx, name string) (types.SnowflakeID, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return types.SnowflakeID(id), nil
}
