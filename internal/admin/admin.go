// Package admin bootstraps the administrative account in the users
// collection. Kept apart from the pipeline: it is a side effect of the
// reseed entry point, not a catalog stage.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"catalog-reseeder/internal/models"
	"catalog-reseeder/internal/store"
	"catalog-reseeder/internal/util"
)

const roleAdmin = "admin"

// EnsureAccount creates or refreshes the administrator document, looked up
// by unique email. Idempotent: an existing account keeps its id and only
// has its credentials and timestamp refreshed.
func EnsureAccount(ctx context.Context, ds store.DocumentStore, email, password string, now time.Time) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         roleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	existing, err := ds.FindByField(ctx, models.CollectionUsers, "email", email)
	switch {
	case err == nil:
		user.ID = existingID(existing)
		user.CreatedAt = existingCreatedAt(existing, now)
	case errors.Is(err, store.ErrNotFound):
		user.ID = uuid.NewString()
	default:
		return "", fmt.Errorf("lookup admin account: %w", err)
	}

	doc := store.Document{Collection: models.CollectionUsers, ID: user.ID, Data: user}
	if err := ds.Set(ctx, doc); err != nil {
		return "", fmt.Errorf("write admin account: %w", err)
	}

	util.GetLogger().Info("Admin account ensured",
		zap.String("email", email),
		zap.String("user_id", user.ID))
	return user.ID, nil
}

func existingID(doc map[string]any) string {
	if id, ok := doc["_id"].(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

func existingCreatedAt(doc map[string]any, fallback time.Time) time.Time {
	switch v := doc["createdAt"].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return fallback
}
