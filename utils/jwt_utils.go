package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Claims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWTToken signs a session token for any of the three roles. The
// account ID points into the users or receivers collection depending on the
// role claim.
func GenerateJWTToken(accountID primitive.ObjectID, email, name, role, jwtSecret, issuer string, expiration time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		AccountID: accountID.Hex(),
		Email:     email,
		Name:      name,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func VerifyJWTToken(tokenString, jwtSecret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

func GetAccountIDFromToken(tokenString, jwtSecret string) (primitive.ObjectID, error) {
	claims, err := VerifyJWTToken(tokenString, jwtSecret)
	if err != nil {
		return primitive.NilObjectID, err
	}

	accountID, err := primitive.ObjectIDFromHex(claims.AccountID)
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid account ID in token")
	}

	return accountID, nil
}
