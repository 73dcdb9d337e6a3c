package utils

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"asset-desk/pkg/contextkeys"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/types"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("не удалось хешировать пароль: %w", err)
	}
	return string(bytes), nil
}

func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}

func WithSession(ctx context.Context, session types.Session) context.Context {
	return context.WithValue(ctx, contextkeys.SessionKey, session)
}

func GetSessionFromCtx(ctx context.Context) (types.Session, error) {
	session, ok := ctx.Value(contextkeys.SessionKey).(types.Session)
	if !ok || session.UserID == 0 {
		return types.Session{}, apperrors.ErrSessionNotFound
	}
	return session, nil
}
