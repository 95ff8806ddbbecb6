package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"jenjangkarir/internal/domain"
	"jenjangkarir/internal/domain/models"
	"jenjangkarir/internal/repositories"
	"jenjangkarir/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookie carries the signed session token.
const SessionCookie = "jk_session"

const sessionTTL = 24 * time.Hour

// Claims are the session token claims.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Users             repositories.UserRepository
	Secret            []byte
	AdminUsername     string
	AdminPasswordHash string
	RequestID         string
	now               func() time.Time
}

func (s AuthService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

var errBadCredentials = domain.UnauthorizedError{Msg: "email/username atau password salah"}

type RegisterInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case in.Username == "":
		return models.User{}, domain.ValidationError{Field: "username", Msg: "username wajib diisi"}
	case in.Email == "":
		return models.User{}, domain.ValidationError{Field: "email", Msg: "email wajib diisi"}
	case len(in.Password) < 8:
		return models.User{}, domain.ValidationError{Field: "password", Msg: "password minimal 8 karakter"}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "format email tidak valid"}
	}

	exists, err := s.Users.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email atau username sudah terdaftar"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "gagal meng-hash password", Err: err}
	}
	u := models.User{
		Name:         utils.NormalizeSpace(in.Name),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         string(domain.RoleUser),
		CreatedAt:    s.clock(),
	}
	id, err := s.Users.Create(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	u.ID = id
	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d", id))
	return u, nil
}

// Login checks identifier (email or username) and password and returns a
// signed session token.
func (s AuthService) Login(ctx context.Context, identifier, password string) (string, models.User, error) {
	u, err := s.Users.GetByEmailOrUsername(ctx, identifier)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.User{}, errBadCredentials
	}
	if err != nil {
		return "", models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", models.User{}, errBadCredentials
	}
	token, err := s.Issue(u.ID, domain.Role(u.Role), u.Name)
	if err != nil {
		return "", models.User{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", u.ID))
	return token, u, nil
}

// AdminLogin checks the configured admin account. There is no admin row in
// the users table.
func (s AuthService) AdminLogin(username, password string) (string, error) {
	if s.AdminPasswordHash == "" || strings.TrimSpace(username) != s.AdminUsername {
		return "", errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.AdminPasswordHash), []byte(password)); err != nil {
		return "", errBadCredentials
	}
	utils.LogEvent(s.RequestID, "auth", "admin_login", "username="+s.AdminUsername)
	return s.Issue(0, domain.RoleAdmin, s.AdminUsername)
}

func (s AuthService) Issue(userID int64, role domain.Role, name string) (string, error) {
	now := s.clock()
	claims := Claims{
		UserID: userID,
		Role:   string(role),
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			Issuer:    "jenjangkarir",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", domain.InternalError{Msg: "gagal membuat token", Err: err}
	}
	return signed, nil
}

// Parse validates a session token.
func (s AuthService) Parse(token string) (domain.RequestContext, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock))
	if err != nil {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "sesi tidak valid", Err: err}
	}
	return domain.RequestContext{UserID: domain.ID(claims.UserID), Role: domain.Role(claims.Role), Name: claims.Name}, nil
}
