package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"reviewhub/internal/api/identity"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/mailer"
	"reviewhub/pkg/apperror"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the payload of the bearer token. The token is self-contained:
// request authentication never touches the database.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// SignUp registers (or re-registers) a user and emails a confirmation
	// code. Returns the pending user record.
	SignUp(ctx context.Context, username, email string) (*models.User, error)
	// ObtainToken exchanges a confirmation code for a signed bearer token.
	ObtainToken(ctx context.Context, username, code string) (string, error)
	// ValidateToken decodes a bearer token into the acting identity.
	ValidateToken(tokenString string) (*identity.Identity, error)
}

type authService struct {
	userRepo  repository.UserRepository
	codeRepo  repository.ConfirmationCodeRepository
	mail      mailer.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	codeTTL   time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codeRepo repository.ConfirmationCodeRepository,
	mail mailer.Mailer,
	jwtSecret string,
	tokenTTL, codeTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		codeRepo:  codeRepo,
		mail:      mail,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		codeTTL:   codeTTL,
	}
}

// SignUp implements get-or-create semantics: the exact (username, email) pair
// may sign up again and receive a fresh code; a partial collision is a field
// error. Email dispatch failure fails the whole call - no silent success.
func (s *authService) SignUp(ctx context.Context, username, email string) (*models.User, error) {
	if models.ReservedUsername(username) {
		return nil, apperror.NewValidation("username", `"me" is a reserved username`)
	}
	if !models.ValidUsername(username) {
		return nil, apperror.NewValidation("username", "only letters, digits and .@+- are allowed")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if user.Email != email {
			return nil, apperror.NewValidation("username", "username already in use")
		}
		// pending user signing up again: reissue the code
	case repository.IsNotFound(err):
		if _, emailErr := s.userRepo.FindByEmail(ctx, email); emailErr == nil {
			return nil, apperror.NewValidation("email", "email already in use")
		}
		user = &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleUser,
		}
		if createErr := s.userRepo.Create(ctx, user); createErr != nil {
			if repository.IsUniqueViolation(createErr) {
				// lost the race against a concurrent signup
				return nil, apperror.NewValidation("username", "username or email already in use")
			}
			return nil, fmt.Errorf("create user: %w", createErr)
		}
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}

	code := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash confirmation code: %w", err)
	}
	if err := s.codeRepo.Store(ctx, user.ID, string(hash), s.codeTTL); err != nil {
		return nil, err
	}

	if err := s.mail.SendConfirmationCode(user.Email, user.Username, code); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) ObtainToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", apperror.ErrNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	hash, err := s.codeRepo.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return "", apperror.NewValidation("confirmation_code", "invalid or expired confirmation code")
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return "", apperror.NewValidation("confirmation_code", "invalid or expired confirmation code")
	}

	// single use: a consumed code cannot be replayed
	if err := s.codeRepo.Delete(ctx, user.ID); err != nil {
		return "", err
	}

	return s.generateToken(user)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*identity.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &identity.Identity{
		UserID:        claims.UserID,
		Username:      claims.Username,
		Role:          role,
		Authenticated: true,
	}, nil
}
