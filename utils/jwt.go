package utils

import (
	"errors"
	"time"

	"github.com/Manelygb/haick-satim-challenge/models"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs a 24h HS256 token carrying the user's identity.
func GenerateJWT(user *models.User, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"bankId": user.BankID,
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// TokenClaims is the identity extracted from a verified token.
type TokenClaims struct {
	UserID uint
	Email  string
	BankID string
}

func ParseJWT(tokenString, secret string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	id, ok := claims["userId"].(float64) // JSON numbers decode as float64
	if !ok {
		return nil, errors.New("userId claim missing")
	}
	email, _ := claims["email"].(string)
	bankID, _ := claims["bankId"].(string)

	return &TokenClaims{UserID: uint(id), Email: email, BankID: bankID}, nil
}
