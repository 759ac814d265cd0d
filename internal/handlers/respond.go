// Package handlers maps HTTP requests onto the services and renders their
// results as JSON.
package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"littlelemon/internal/access"
	"littlelemon/internal/apperr"
	"littlelemon/internal/middleware"
	"littlelemon/internal/query"

	"github.com/gofiber/fiber/v2"
)

// HeaderTotalCount carries the unpaginated number of matches on list responses.
const HeaderTotalCount = "X-Total-Count"

// Paging holds the perpage default and ceiling applied to every list endpoint.
type Paging struct {
	DefaultSize int
	MaxSize     int
}

func (p Paging) parse(c *fiber.Ctx) (query.Page, error) {
	return query.ParsePage(c.Query("page"), c.Query("perpage"), p.DefaultSize, p.MaxSize)
}

// respondError writes the status and body for err. roleStatus is the status
// used when the caller's role may not use the endpoint.
func respondError(c *fiber.Ctx, err error, roleStatus int) error {
	var fieldErr *apperr.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  fieldErr.Fields,
		})
	case errors.Is(err, apperr.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": apperr.Message(err)})
	case errors.Is(err, apperr.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": apperr.Message(err)})
	case errors.Is(err, apperr.ErrRoleDenied):
		return c.Status(roleStatus).JSON(fiber.Map{"message": "You are not authorized"})
	case errors.Is(err, apperr.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": apperr.Message(err)})
	case errors.Is(err, apperr.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": apperr.Message(err)})
	case errors.Is(err, apperr.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": apperr.Message(err)})
	}
	log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}

// parseBody decodes the JSON body into out. A malformed body is a validation failure.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// principal returns the caller set by middleware.AuthRequired.
func principal(c *fiber.Ctx) (access.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return access.Principal{}, fmt.Errorf("authentication credentials were not provided: %w", apperr.ErrUnauthenticated)
	}
	return p, nil
}

// respondList writes a page of rows with the total match count in a header.
func respondList(c *fiber.Ctx, rows interface{}, total int64) error {
	c.Set(HeaderTotalCount, strconv.FormatInt(total, 10))
	return c.JSON(rows)
}
