package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) statusOp() huma.Operation {
	return huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Service status",
		Description: "Returns ok while the service is up",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
