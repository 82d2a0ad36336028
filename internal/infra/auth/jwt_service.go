package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/MagGomedMY/stark-backend/config"
	"github.com/MagGomedMY/stark-backend/internal/domain/service"
)

// Verification failure reasons reported to callers.
const (
	reasonExpired          = "token expired"
	reasonMalformed        = "malformed token"
	reasonInvalidSignature = "invalid signature"
	reasonInvalidClaims    = "invalid token claims"
)

// jwtService is a concrete implementation of the TokenService interface using
// HS256-signed JWTs. The signing secret is process-wide configuration loaded
// once at startup.
type jwtService struct {
	secret string
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService. It refuses to build a
// service without a signing secret: a guessable default would invalidate
// every token the service ever issues.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth.TokenSecret == "" {
		return nil, errors.New("token signing secret must be provided")
	}

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}

	return &jwtService{
		secret: cfg.Auth.TokenSecret,
		ttl:    ttl,
	}, nil
}

// Issue creates a signed token for the given account. The payload carries the
// account id, username and issuance time; expiry is encoded in the standard
// exp claim.
func (s *jwtService) Issue(accountID uuid.UUID, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      accountID.String(),
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Verify validates a token string and decodes its payload. It always returns
// a discriminated result, never an error: signature mismatches, malformed
// input and expiry all map to Valid=false with a short reason.
func (s *jwtService) Verify(tokenString string) service.Verification {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return service.Verification{Valid: false, Reason: classifyTokenError(err)}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return service.Verification{Valid: false, Reason: reasonInvalidClaims}
	}

	decoded, ok := decodeSessionClaims(claims)
	if !ok {
		return service.Verification{Valid: false, Reason: reasonInvalidClaims}
	}

	return service.Verification{Valid: true, Claims: decoded}
}

// TTL returns the configured token lifetime.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}

func classifyTokenError(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return reasonExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return reasonMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return reasonInvalidSignature
	default:
		return reasonInvalidClaims
	}
}

func decodeSessionClaims(claims jwt.MapClaims) (*service.SessionClaims, bool) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, false
	}

	accountID, err := uuid.Parse(sub)
	if err != nil {
		return nil, false
	}

	username, ok := claims["username"].(string)
	if !ok {
		return nil, false
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, false
	}

	return &service.SessionClaims{
		AccountID: accountID,
		Username:  username,
		IssuedAt:  time.Unix(int64(iat), 0),
	}, true
}
