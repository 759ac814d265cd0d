package handlers

import (
	"errors"
	"log"

	"littlelemon/internal/apperr"
	"littlelemon/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// RegisterProtectedRoutes registers the routes that need a logged in user.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/auth/users/me", h.HandleMe)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}

	user, err := h.authService.RegisterUser(c.UserContext(), in)
	if err != nil {
		log.Printf("Error registering user %s: %v", in.Username, err)
		return respondError(c, err, fiber.StatusForbidden)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    memberResponse{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}
	if req.Username == "" || req.Password == "" {
		return respondError(c, &apperr.FieldError{Fields: missingCredentials(req)}, fiber.StatusForbidden)
	}

	token, err := h.authService.LoginUser(c.UserContext(), req.Username, req.Password)
	if errors.Is(err, apperr.ErrUnauthenticated) {
		log.Printf("Failed login for user %s: %v", req.Username, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
		})
	}
	if err != nil {
		return respondError(c, err, fiber.StatusForbidden)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

func missingCredentials(req LoginRequest) map[string]string {
	fields := map[string]string{}
	if req.Username == "" {
		fields["username"] = "Field 'username' failed on the 'required' tag"
	}
	if req.Password == "" {
		fields["password"] = "Field 'password' failed on the 'required' tag"
	}
	return fields
}

// HandleMe returns the calling user and their roles.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	user, err := h.authService.Me(c.UserContext(), p)
	if err != nil {
		return respondError(c, err, fiber.StatusUnauthorized)
	}
	return c.JSON(newMeResponse(user, p))
}
