// Package auth authenticates API callers with HS256 bearer tokens.
//
// LoadSessionUser runs on every request and, when a valid
// "Authorization: Bearer <jwt>" header is present, places the caller in the
// request context. RequireSignedIn guards private routes. A missing or
// invalid token on a public route is not an error; the request simply
// proceeds anonymously.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/apperr"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// MinSecretLength is the shortest signing secret accepted without a warning.
const MinSecretLength = 32

// SessionUser is the authenticated caller injected into r.Context().
type SessionUser struct {
	ID       string // user ObjectID hex
	Username string
	Name     string
	Email    string
}

// Claims is the token payload. Subject carries the user id.
type Claims struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserFetcher reloads the caller on each request so deleted accounts stop
// authenticating immediately. It returns nil when the user no longer exists.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

var (
	ErrNoToken      = errors.New("no bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// TokenManager issues and verifies tokens and provides the auth middleware.
type TokenManager struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	log     *zap.Logger
	fetcher UserFetcher
	now     func() time.Time
}

// NewTokenManager builds a TokenManager. The secret must be non-empty;
// secrets shorter than MinSecretLength are accepted with a warning.
func NewTokenManager(secret, issuer string, ttl time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty; provide at least %d random chars", MinSecretLength)
	}
	if len(secret) < MinSecretLength {
		logger.Warn("jwt secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive, got %s", ttl)
	}
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		log:    logger,
		now:    time.Now,
	}, nil
}

// SetUserFetcher enables a per-request user reload.
func (m *TokenManager) SetUserFetcher(f UserFetcher) {
	m.fetcher = f
}

// TTL returns the token lifetime.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for u and returns it with its expiry.
func (m *TokenManager) Issue(u SessionUser) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := Claims{
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse verifies a token's signature, algorithm, issuer, and expiry.
func (m *TokenManager) Parse(token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header.
func BearerToken(r *http.Request) (string, error) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return "", ErrNoToken
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(token), nil
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the caller and whether one is signed in.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// LoadSessionUser injects the caller into context when the request carries a
// valid token (and, with a fetcher, the user still exists).
func (m *TokenManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := BearerToken(r)
		if err != nil {
			if !errors.Is(err, ErrNoToken) {
				m.log.Debug("malformed authorization header", zap.String("path", r.URL.Path))
			}
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.Parse(token)
		if err != nil {
			m.log.Debug("rejected bearer token", zap.String("path", r.URL.Path), zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		u := &SessionUser{
			ID:       claims.Subject,
			Username: claims.Username,
			Name:     claims.Name,
			Email:    claims.Email,
		}
		if m.fetcher != nil {
			u = m.fetcher.FetchUser(r.Context(), claims.Subject)
			if u == nil {
				next.ServeHTTP(w, r)
				return
			}
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn rejects anonymous callers with a JSON 401.
func (m *TokenManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		_ = httpjson.WriteError(w, apperr.Unauthorized("Authentication required"))
	})
}

// WithTestUser injects u into the request context, bypassing token parsing.
// It exists for handler tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}
