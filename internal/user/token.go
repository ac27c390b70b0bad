package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// IssueAccessToken signs a short-lived HS256 bearer token carrying the
// claims the middleware reads back.
func IssueAccessToken(u models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET not configured")
	}

	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"email":   u.Email,
		"role":    u.Role,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// RefreshStore keeps opaque refresh tokens in Redis keyed by user.
type RefreshStore struct {
	rdb *redis.Client
}

func NewRefreshStore(rdb *redis.Client) *RefreshStore {
	return &RefreshStore{rdb: rdb}
}

func refreshKey(userID string) string {
	return "refresh:" + userID
}

// Issue generates, stores and returns a fresh opaque token, displacing any
// previous one for the user.
func (s *RefreshStore) Issue(ctx context.Context, userID string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	if err := s.rdb.Set(ctx, refreshKey(userID), token, refreshTokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Check reports whether the presented token is the live one for the user.
func (s *RefreshStore) Check(ctx context.Context, userID, token string) (bool, error) {
	stored, err := s.rdb.Get(ctx, refreshKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == token, nil
}

// Revoke drops the refresh token (logout).
func (s *RefreshStore) Revoke(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, refreshKey(userID)).Err()
}
