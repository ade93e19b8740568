package cloudinary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// uploadAPI is the part of cloudinary's upload client the store uses.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

type Store struct {
	api    uploadAPI
	folder string
}

func New(cloudName, apiKey, apiSecret, folder string) (*Store, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return newStore(&cld.Upload, folder), nil
}

func newStore(client uploadAPI, folder string) *Store {
	return &Store{api: client, folder: folder}
}

// Put uploads under assetID(key), overwriting any previous asset.
func (s *Store) Put(ctx context.Context, key string, data []byte, _ string) (string, error) {
	resp, err := s.api.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     s.assetID(key),
		Overwrite:    api.Bool(true),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", errors.New("cloudinary upload: empty url")
	}
	return resp.SecureURL, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	resp, err := s.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     s.assetID(key),
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", resp.Error.Message)
	}
	if resp.Result != "ok" {
		return fmt.Errorf("cloudinary destroy: %s", resp.Result)
	}
	return nil
}

// assetID is the full public id, folder included, used for both upload and
// destroy. The extension is folded into the name so a.png and a.gif stay distinct.
func (s *Store) assetID(key string) string {
	name := key
	if ext := path.Ext(key); ext != "" {
		name = strings.TrimSuffix(key, ext) + "_" + strings.TrimPrefix(ext, ".")
	}
	return path.Join(s.folder, name)
}
