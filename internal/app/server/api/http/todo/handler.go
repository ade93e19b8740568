package todo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/ijas-muhmd/todo-app/internal/app/server/api/http/middleware/auth"
	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
)

type Handler struct {
	service    todo.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service todo.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "todo_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.uploadOp(), h.upload)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	todos, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &listOutput{Body: todos}, nil
}

func (h *Handler) get(ctx context.Context, input *idInput) (*todoOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	t, err := h.service.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &todoOutput{Body: t}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*todoOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	t, err := h.service.Create(ctx, userID, input.Body.Name, input.Body.Description)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &todoOutput{Body: t}, nil
}

func (h *Handler) upload(ctx context.Context, input *uploadInput) (*todoOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	files := input.RawBody.File["image"]
	if len(files) == 0 {
		return nil, huma.Error422UnprocessableEntity("image file is required")
	}
	fh := files[0]

	f, err := fh.Open()
	if err != nil {
		return nil, huma.Error400BadRequest("unreadable image file")
	}
	defer f.Close()

	// One byte past the limit is enough for the service to reject it.
	data, err := io.ReadAll(io.LimitReader(f, todo.MaxImageSize+1))
	if err != nil {
		return nil, huma.Error400BadRequest("unreadable image file")
	}

	t, err := h.service.AttachImage(ctx, userID, input.ID, todo.Image{
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
		Filename:    fh.Filename,
	})
	if err != nil {
		return nil, h.mapError(err)
	}
	return &todoOutput{Body: t}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*todoOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	t, err := h.service.Update(ctx, userID, input.ID, input.Body.Name, input.Body.Description)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &todoOutput{Body: t}, nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*statusOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, h.mapError(err)
	}
	return &statusOutput{Body: StatusResponse{Status: "ok"}}, nil
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, todo.ErrNotFound):
		return huma.Error404NotFound("Todo not found")
	case errors.Is(err, todo.ErrEmptyUpdate):
		return huma.Error400BadRequest("No update data provided")
	case errors.Is(err, todo.ErrUnsupportedType):
		return huma.Error400BadRequest("Unsupported file type.")
	case errors.Is(err, todo.ErrTooLarge):
		return huma.Error400BadRequest(fmt.Sprintf("Image exceeds %d bytes.", todo.MaxImageSize))
	case errors.Is(err, todo.ErrUploadFailed):
		h.log.Warn("attachment upload failed", "error", err)
		return huma.Error502BadGateway("Image upload failed")
	}
	h.log.Error("unhandled todo error", "error", err)
	return huma.Error500InternalServerError("internal server error")
}
