package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/ijas-muhmd/todo-app/internal/domain/user"
)

type Auth struct {
	api   huma.API
	users user.Servicer
	log   *slog.Logger
}

func New(api huma.API, users user.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		api:   api,
		users: users,
		log:   log.With("component", "auth_middleware"),
	}
}

type contextKey string

const userKey contextKey = "user"

// Middleware resolves the bearer token to a user and stores it in the request context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := bearer(ctx.Header("Authorization"))
		if !ok {
			a.reject(ctx, "Not authenticated")
			return
		}

		u, err := a.users.Current(ctx.Context(), token)
		if err != nil {
			if errors.Is(err, user.ErrInvalidAuth) {
				a.log.Debug("token rejected", "error", err)
				a.reject(ctx, "Could not validate credentials")
				return
			}
			a.log.Error("resolve current user", "error", err)
			_ = huma.WriteErr(a.api, ctx, http.StatusInternalServerError, "internal server error")
			return
		}

		next(huma.WithContext(ctx, WithUser(ctx.Context(), u)))
	}
}

func (a *Auth) reject(ctx huma.Context, msg string) {
	ctx.SetHeader("WWW-Authenticate", "Bearer")
	if err := huma.WriteErr(a.api, ctx, http.StatusUnauthorized, msg); err != nil {
		a.log.Error("write error response", "error", err)
	}
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func GetUser(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(userKey).(user.User)
	return u, ok
}

func GetUserID(ctx context.Context) (string, bool) {
	u, ok := GetUser(ctx)
	return u.ID, ok
}
