package blob

import (
	"fmt"
	"net/http"

	"github.com/spf13/afero"

	"github.com/ijas-muhmd/todo-app/internal/app/server/config"
	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
	"github.com/ijas-muhmd/todo-app/internal/infrastructure/blob/cloudinary"
	"github.com/ijas-muhmd/todo-app/internal/infrastructure/blob/fs"
)

// Static is implemented by stores whose blobs are served by this process.
type Static interface {
	Prefix() string
	Handler() http.Handler
}

// Open builds the blob store selected by BLOB_DRIVER.
func Open(cfg *config.Config) (todo.BlobStore, error) {
	switch cfg.Blob.Driver {
	case config.BlobFS:
		return fs.New(afero.NewOsFs(), cfg.Blob.Dir, cfg.Blob.Bucket, cfg.Blob.BaseURL)
	case config.BlobCloudinary:
		c := cfg.Blob.Cloudinary
		return cloudinary.New(c.CloudName, c.APIKey, c.APISecret, cfg.Blob.Bucket)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Blob.Driver)
	}
}
