package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoIdentity = errors.New("no authenticated identity in request context")

// FromContext resolves the acting identity from the JWT claims the auth
// middleware stored in Fiber locals.
func FromContext(c *fiber.Ctx) (Actor, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Actor{}, ErrNoIdentity
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, ErrNoIdentity
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Actor{}, ErrNoIdentity
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return Actor{}, ErrNoIdentity
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return Actor{ID: id, Email: email, Role: role}, nil
}
