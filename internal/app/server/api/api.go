// Package api assembles the HTTP surface:
//
//	GET    /                    status (public)
//	POST   /token               password form login (public)
//	POST   /register            registration (public)
//	GET    /users/me            current user (auth)
//	GET    /list-all-todo/      caller's todos (auth)
//	GET    /list-one-todo/{id}  one todo (auth)
//	POST   /create-todo/        create (auth)
//	POST   /upload-image/{id}   attach image (auth)
//	PUT    /update-todo/{id}    replace name/description (auth)
//	DELETE /delete-todo/{id}    delete (auth)
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/exp/slog"

	healthAPI "github.com/ijas-muhmd/todo-app/internal/app/server/api/http/health"
	"github.com/ijas-muhmd/todo-app/internal/app/server/api/http/middleware"
	"github.com/ijas-muhmd/todo-app/internal/app/server/api/http/middleware/auth"
	"github.com/ijas-muhmd/todo-app/internal/app/server/api/http/middleware/logger"
	todoAPI "github.com/ijas-muhmd/todo-app/internal/app/server/api/http/todo"
	userAPI "github.com/ijas-muhmd/todo-app/internal/app/server/api/http/user"
	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
	"github.com/ijas-muhmd/todo-app/internal/domain/user"
)

// Services are the domain services the handlers call.
type Services struct {
	Users user.Servicer
	Todos todo.Servicer
}

// Static serves blobs from this process; nil when the blob store is remote.
type Static interface {
	Prefix() string
	Handler() http.Handler
}

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	Todo   *todoAPI.Handler
}

// New creates the *chi.Mux with every operation registered through huma.
func New(services Services, static Static, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	config := huma.DefaultConfig("Todo API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}

	API := humachi.New(mux, config)

	h := handlers(API, services, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Todo.SetupRoutes(API)

	if static != nil {
		mux.Handle(static.Prefix()+"*", static.Handler())
	}

	return mux
}

func handlers(api huma.API, services Services, log *slog.Logger) *Handlers {
	authMW := auth.New(api, services.Users, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	userHandler := userAPI.NewHandler(services.Users, log, public, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	todoHandler := todoAPI.NewHandler(services.Todos, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Todo:   todoHandler,
	}
}
