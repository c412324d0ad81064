package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrSessionInvalid = errors.New("session invalid")

// SessionService firma y valida la cookie de sesión con SECRET_KEY.
// La cookie solo transporta el id; el historial vive en el HistoryStore.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

func NewSessionService(secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "symptom-predictor",
	}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Issue crea un id de sesión nuevo y su token firmado.
func (s *SessionService) Issue() (string, string, error) {
	if len(s.secret) == 0 {
		return "", "", ErrSessionInvalid
	}
	id := uuid.NewString()
	now := time.Now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return id, signed, nil
}

// Parse valida el token y devuelve el id de sesión.
func (s *SessionService) Parse(tokenString string) (string, error) {
	if len(s.secret) == 0 || strings.TrimSpace(tokenString) == "" {
		return "", ErrSessionInvalid
	}
	var claims sessionClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", ErrSessionInvalid
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		return "", ErrSessionInvalid
	}
	return claims.ID, nil
}
