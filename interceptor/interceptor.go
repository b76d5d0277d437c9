// Package interceptor authenticates incoming requests before they reach
// the service handlers, with an allowlist for public subjects.
package interceptor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"challengeme/pkg/jwt"
)

// ContextKey type for context keys
type ContextKey string

const (
	UserIDKey ContextKey = "user_id"
)

// Authenticator validates bearer tokens on request subjects.
type Authenticator struct {
	jwtManager     *jwt.Manager
	publicSubjects map[string]bool
}

// NewAuthenticator creates an authenticator with public subjects that
// do not require a token.
func NewAuthenticator(jwtManager *jwt.Manager, publicSubjects []string) *Authenticator {
	subjectMap := make(map[string]bool)
	for _, subject := range publicSubjects {
		subjectMap[subject] = true
	}

	return &Authenticator{
		jwtManager:     jwtManager,
		publicSubjects: subjectMap,
	}
}

// AddPublicSubject marks a subject as not requiring authentication.
func (a *Authenticator) AddPublicSubject(subject string) {
	a.publicSubjects[subject] = true
}

// Authorize validates the token for a subject and returns a context
// carrying the caller's user id. Public subjects pass through untouched.
func (a *Authenticator) Authorize(ctx context.Context, subject, token string) (context.Context, error) {
	if a.publicSubjects[subject] {
		return ctx, nil
	}

	if token == "" {
		return nil, errors.New("authorization token is not provided")
	}

	claims, err := a.jwtManager.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token: %w", err)
	}

	return context.WithValue(ctx, UserIDKey, userID), nil
}

// UserIDFromContext extracts the authenticated caller's id.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
