package util

import (
	"interview_prep_backend/internal/model"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims 会话 Cookie 中只保存会话 ID，状态本身在服务端存储
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(sessionID, secret string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseSessionToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid && claims.SessionID != "" {
		return claims, nil
	}
	return nil, ErrInvalidSession
}

func GetSessionFromContext(c *gin.Context) *model.SessionState {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	state, ok := value.(*model.SessionState)
	if !ok {
		return nil
	}
	return state
}

func GetSessionIDFromContext(c *gin.Context) string {
	return c.GetString(ContextSessionIDKey)
}
