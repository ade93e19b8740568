package user

import (
	"context"
	"errors"
	"net/url"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/ijas-muhmd/todo-app/internal/app/server/api/http/middleware/auth"
	"github.com/ijas-muhmd/todo-app/internal/domain/user"
)

type Handler struct {
	service        user.Servicer
	log            *slog.Logger
	middleware     huma.Middlewares
	authMiddleware huma.Middlewares
}

// NewHandler takes the public middlewares and the ones guarding /users/me.
func NewHandler(service user.Servicer, log *slog.Logger, public, authed huma.Middlewares) *Handler {
	return &Handler{
		service:        service,
		log:            log.With("component", "user_handler"),
		middleware:     public,
		authMiddleware: authed,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.tokenOp(), h.token)
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.meOp(), h.me)
}

func (h *Handler) token(ctx context.Context, input *tokenInput) (*tokenOutput, error) {
	form, err := url.ParseQuery(string(input.RawBody))
	if err != nil {
		return nil, huma.Error400BadRequest("malformed form body")
	}
	username, password := form.Get("username"), form.Get("password")
	if username == "" || password == "" {
		return nil, huma.Error422UnprocessableEntity("username and password are required")
	}

	token, err := h.service.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidAuth) {
			return nil, huma.Error401Unauthorized("Incorrect username or password")
		}
		h.log.Error("login", "error", err)
		return nil, huma.Error500InternalServerError("internal server error")
	}

	return &tokenOutput{
		Body: TokenResponse{AccessToken: token, TokenType: "bearer"},
	}, nil
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	_, err := h.service.Register(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		var de *user.DomainError
		switch {
		case errors.Is(err, user.ErrAlreadyExists):
			return nil, huma.Error409Conflict("Email already exists")
		case errors.As(err, &de):
			return nil, huma.Error400BadRequest(de.Error())
		case errors.Is(err, user.ErrInvalidInput):
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error("register", "error", err)
		return nil, huma.Error500InternalServerError("internal server error")
	}

	return &registerOutput{
		Body: MessageResponse{Message: "User created successfully"},
	}, nil
}

func (h *Handler) me(ctx context.Context, _ *struct{}) (*meOutput, error) {
	u, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}
	return &meOutput{Body: u}, nil
}
