package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gobrick/brickpool-backend/api/responses"
	pkgauth "github.com/gobrick/brickpool-backend/pkg/auth"
	"github.com/gobrick/brickpool-backend/pkg/auth/session"
	"github.com/gobrick/brickpool-backend/pkg/config"
	pkgerrors "github.com/gobrick/brickpool-backend/pkg/errors"
	"github.com/gobrick/brickpool-backend/pkg/logger"
	"github.com/google/uuid"
)

// IdentityMirror records the authenticated identity locally so foreign keys
// on lists and offers always resolve.
type IdentityMirror interface {
	Ensure(ctx context.Context, userID uuid.UUID, displayName string) error
}

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, mirror IdentityMirror, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := authenticate(r, cfg, verifier, mirror, logg)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth authenticates when credentials are supplied and passes the
// request through anonymously otherwise. A token that is present but invalid
// is still rejected.
func OptionalAuth(cfg config.JWTConfig, verifier session.AccessSessionChecker, mirror IdentityMirror, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.TrimSpace(r.Header.Get("Authorization")) == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx, err := authenticate(r, cfg, verifier, mirror, logg)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(r *http.Request, cfg config.JWTConfig, verifier session.AccessSessionChecker, mirror IdentityMirror, logg *logger.Logger) (context.Context, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	claims, err := pkgauth.ParseAccessToken(cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user id")
	}
	if claims.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}

	if verifier != nil {
		ok, err := verifier.HasSession(r.Context(), claims.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable")
		}
	}

	ctx := r.Context()
	if mirror != nil {
		if err := mirror.Ensure(ctx, claims.UserID, claims.DisplayName); err != nil && logg != nil {
			logg.Warn(logg.WithUserID(ctx, claims.UserID.String()), "mirroring identity failed")
		}
	}

	ctx = WithUserID(ctx, claims.UserID.String())
	ctx = WithDisplayName(ctx, claims.DisplayName)

	if logg != nil {
		ctx = logg.WithUserID(ctx, claims.UserID.String())
	}
	return ctx, nil
}
