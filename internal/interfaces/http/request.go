package http

import (
	"encoding/json"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// decodeBody unmarshals the JSON body into v. An empty body leaves v untouched,
// so missing fields are reported by the use case instead of as a parse error.
func decodeBody(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}

// param returns the decoded route parameter, copied out of the request buffer.
func param(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if v, err := url.PathUnescape(raw); err == nil {
		raw = v
	}
	return utils.CopyString(raw)
}
