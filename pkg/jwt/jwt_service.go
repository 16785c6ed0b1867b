package jwt

import (
	"errors"
	"fmt"
	"time"

	"Pantry-Tracker/domain"

	"github.com/golang-jwt/jwt/v4"
)

const SchedulerRole = "scheduler"

type (
	// JWTService issues and checks the bearer tokens external schedulers
	// present to the automatic consumption endpoints.
	JWTService interface {
		Enabled() bool
		GenerateSchedulerToken(subject string, duration time.Duration) (string, error)
		ValidateSchedulerToken(token string) (string, error)
	}

	jwtSchedulerClaim struct {
		Role string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		now       func() time.Time
	}
)

func NewJWTService(secretKey string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    "PANTRY",
		now:       time.Now,
	}
}

func (j *jwtService) Enabled() bool {
	return j.secretKey != ""
}

func (j *jwtService) GenerateSchedulerToken(subject string, duration time.Duration) (string, error) {
	if !j.Enabled() {
		return "", errors.New("JWT_SECRET is not configured")
	}
	now := j.now()
	claims := jwtSchedulerClaim{
		SchedulerRole,
		jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

// ValidateSchedulerToken returns the token subject.
func (j *jwtService) ValidateSchedulerToken(token string) (string, error) {
	t_Token, err := jwt.ParseWithClaims(token, &jwtSchedulerClaim{}, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtSchedulerClaim)
	if claims.Issuer != j.issuer || claims.Role != SchedulerRole {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
