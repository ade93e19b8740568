package todo

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// uploadBodyLimit leaves room above the image limit so oversized files reach
// the service and are rejected there with 400.
const uploadBodyLimit = 8 * 1024 * 1024

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "todos-list",
		Method:      http.MethodGet,
		Path:        "/list-all-todo/",
		Summary:     "List the caller's todos",
		Tags:        []string{"todos"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "todos-get",
		Method:      http.MethodGet,
		Path:        "/list-one-todo/{id}",
		Summary:     "Get one todo",
		Tags:        []string{"todos"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "todos-create",
		Method:        http.MethodPost,
		Path:          "/create-todo/",
		Summary:       "Create a todo",
		Tags:          []string{"todos"},
		DefaultStatus: http.StatusCreated,
		Security:      bearer,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) uploadOp() huma.Operation {
	return huma.Operation{
		OperationID:  "todos-upload-image",
		Method:       http.MethodPost,
		Path:         "/upload-image/{id}",
		Summary:      "Attach an image",
		Description:  "Uploads a JPEG, PNG or GIF of at most 2 MiB in the `image` field and marks the todo completed.",
		Tags:         []string{"todos"},
		MaxBodyBytes: uploadBodyLimit,
		Security:     bearer,
		Middlewares:  h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "todos-update",
		Method:      http.MethodPut,
		Path:        "/update-todo/{id}",
		Summary:     "Replace name and description",
		Tags:        []string{"todos"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "todos-delete",
		Method:      http.MethodDelete,
		Path:        "/delete-todo/{id}",
		Summary:     "Delete a todo",
		Tags:        []string{"todos"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}
