package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"littlelemon/internal/access"
	"littlelemon/internal/apperr"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	validate  *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		validate:  NewValidator(),
	}
}

// RegisterUser registers a new user, hashes their password, and saves them to the database.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	// Usernames and emails are unique across accounts.
	if existingUser, err := s.userRepo.GetByUsername(ctx, in.Username); err == nil && existingUser != nil {
		return nil, apperr.Conflict("username '%s' already taken", in.Username)
	}
	if existingUser, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil && existingUser != nil {
		return nil, apperr.Conflict("email '%s' already registered", in.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: in.Username, Email: in.Email, Password: string(hashedPassword)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
func (s *AuthService) LoginUser(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthenticated)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// Authenticate validates the token and resolves the caller's groups into a
// principal. A token for a user that no longer exists is rejected.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (access.Principal, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return access.Principal{}, fmt.Errorf("%v: %w", err, apperr.ErrUnauthenticated)
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return access.Principal{}, fmt.Errorf("token has no user_id claim: %w", apperr.ErrUnauthenticated)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		return access.Principal{}, fmt.Errorf("user %s no longer exists: %w", userID, apperr.ErrUnauthenticated)
	}
	if err != nil {
		return access.Principal{}, err
	}
	return access.NewPrincipal(user.ID, user.Username, user.GroupNames()), nil
}

// Me returns the stored user behind a principal.
func (s *AuthService) Me(ctx context.Context, p access.Principal) (*models.User, error) {
	return s.userRepo.GetByID(ctx, p.UserID)
}

// EnsureManager creates the bootstrap account if needed and makes sure it
// belongs to the Manager group.
func (s *AuthService) EnsureManager(ctx context.Context, username, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		if email == "" {
			email = username + "@localhost.localdomain"
		}
		user, err = s.RegisterUser(ctx, RegisterInput{Username: username, Email: email, Password: password})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to ensure manager %s: %w", username, err)
	}
	if err := s.userRepo.AddToGroup(ctx, user.ID, access.GroupManager); err != nil {
		return nil, fmt.Errorf("failed to promote %s to manager: %w", username, err)
	}
	return user, nil
}
