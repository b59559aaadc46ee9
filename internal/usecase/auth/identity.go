package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const accessTokenCookie = "access_token"

// IdentityResolver extracts the verified caller from a request.
type IdentityResolver interface {
	Resolve(r *http.Request) (domain.Identity, error)
}

// Claims issued by the identity provider. The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTResolver verifies bearer tokens signed either with a shared HMAC secret
// or with keys published on a JWKS endpoint.
type JWTResolver struct {
	keyfunc jwt.Keyfunc
	parser  *jwt.Parser
	jwks    *keyfunc.JWKS
}

func NewHMACResolver(secret, issuer string) *JWTResolver {
	return &JWTResolver{
		keyfunc: func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		parser: newParser(issuer, jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()),
	}
}

func NewJWKSResolver(ctx context.Context, jwksURL, issuer string, logger *slog.Logger) (*JWTResolver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Warn("failed to refresh JWKS", slog.String("url", jwksURL), slog.String("error", err.Error()))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS: %w", err)
	}

	return &JWTResolver{
		keyfunc: jwks.Keyfunc,
		parser:  newParser(issuer, "RS256", "RS384", "RS512", "ES256", "ES384", "ES512", "EdDSA"),
		jwks:    jwks,
	}, nil
}

func newParser(issuer string, methods ...string) *jwt.Parser {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return jwt.NewParser(opts...)
}

// Resolve returns domain.ErrUnauthorized for a missing, malformed, expired or
// unverifiable token.
func (r *JWTResolver) Resolve(req *http.Request) (domain.Identity, error) {
	raw, ok := bearerToken(req)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthorized
	}

	var claims Claims
	token, err := r.parser.ParseWithClaims(raw, &claims, r.keyfunc)
	if err != nil || !token.Valid {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	if claims.Subject == "" {
		return domain.Identity{}, domain.ErrUnauthorized
	}

	return domain.Identity{ID: claims.Subject, Email: claims.Email}, nil
}

// Close stops the JWKS background refresh, if any.
func (r *JWTResolver) Close() {
	if r.jwks != nil {
		r.jwks.EndBackground()
	}
}

func bearerToken(req *http.Request) (string, bool) {
	if header := req.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return "", false
		}
		token = strings.TrimSpace(token)
		return token, token != ""
	}

	if cookie, err := req.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}
