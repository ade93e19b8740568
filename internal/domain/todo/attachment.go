package todo

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const MaxImageSize = 2 * 1024 * 1024

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// ImageKey derives the blob key for a todo attachment. The same todo and
// filename always map to the same key, so a retried upload overwrites.
func ImageKey(id, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		name = "image"
	}
	return fmt.Sprintf("todo_%s_%s", id, name)
}

// AttachImage uploads img and links it to the todo. If linking fails the
// uploaded blob is deleted again; a failing delete is logged and left behind.
func (s *Service) AttachImage(ctx context.Context, ownerID, id string, img Image) (*Todo, error) {
	ctx, span := s.tracer.Start(ctx, "todo.AttachImage")
	defer span.End()

	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return nil, err
	}

	if _, ok := allowedImageTypes[img.ContentType]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, img.ContentType)
	}

	if len(img.Data) > MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrTooLarge, len(img.Data), MaxImageSize)
	}

	key := ImageKey(id, img.Filename)
	span.SetAttributes(
		attribute.String("todo.id", id),
		attribute.String("blob.key", key),
		attribute.Int("blob.size", len(img.Data)),
	)
	log := s.log.With("todo_id", id, "owner_id", ownerID, "key", key)

	var url string
	err := s.uploads.Do(ctx, func(ctx context.Context) error {
		ctx, span := s.tracer.Start(ctx, "blob.Put")
		defer span.End()

		var err error
		url, err = s.blobs.Put(ctx, key, img.Data, img.ContentType)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "upload failed")
		}
		return err
	})
	if err != nil {
		log.Error("image upload failed", "error", err)
		span.SetStatus(codes.Error, "upload failed")
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	// The link step must not be abandoned halfway because the client went away.
	linkCtx := context.WithoutCancel(ctx)

	t, err := s.repo.SetImage(linkCtx, ownerID, id, url)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to link image", "error", err)
		} else {
			log.Warn("todo disappeared before image was linked")
		}
		span.SetStatus(codes.Error, "link failed")
		s.compensate(linkCtx, key)
		return nil, fmt.Errorf("%w: link image: %v", ErrUploadFailed, err)
	}

	log.Info("image attached", "url", url)

	return t, nil
}

func (s *Service) compensate(ctx context.Context, key string) {
	ctx, span := s.tracer.Start(ctx, "blob.Delete")
	defer span.End()

	if err := s.blobs.Delete(ctx, key); err != nil {
		span.RecordError(err)
		s.log.Error("orphaned blob left behind", "key", key, "error", err)
		return
	}
	s.log.Info("uploaded blob removed after failed link", "key", key)
}
