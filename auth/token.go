package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Principal is the authenticated identity decoded from a verified token.
type Principal struct {
	UserID  primitive.ObjectID
	IsAdmin bool
}

// Claims is the token payload: the user id, the admin flag, nothing else.
// No expiry is set in the current scope.
type Claims struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// ErrInvalidToken is returned for any token that does not verify: bad
// signature, wrong algorithm, malformed payload.
var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies HS256 session tokens. The signing secret
// is injected at construction and never changes afterwards.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a token for the given user.
func (s *TokenService) Issue(userID primitive.ObjectID, isAdmin bool) (string, error) {
	claims := Claims{
		UserID:  userID.Hex(),
		IsAdmin: isAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature and returns the principal it encodes.
func (s *TokenService) Verify(tokenString string) (Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	if !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	return Principal{UserID: userID, IsAdmin: claims.IsAdmin}, nil
}
