package impl

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"lumera/config"
	deliverycontext "lumera/internal/delivery/context"
	"lumera/internal/domain/entity"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/domain/repository"
	"lumera/internal/domain/service"
	"lumera/internal/errors"
	"lumera/internal/usecase"
	"lumera/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	defaultMaxUploadBytes = 5 << 20
	mediaKeyPrefix        = "media/"
)

// mediaService implements the MediaUsecase interface.
type mediaService struct {
	mediaRepo repository.MediaRepository
	blobs     service.BlobStore
	maxBytes  int64
	now       func() time.Time
	logger    *slog.Logger
}

// MediaServiceParams holds dependencies for MediaService, injected by Fx.
type MediaServiceParams struct {
	fx.In

	MediaRepo repository.MediaRepository
	BlobStore service.BlobStore
	Config    *config.Config
	Logger    *slog.Logger
}

// NewMediaService is the constructor for mediaService.
func NewMediaService(params MediaServiceParams) usecase.MediaUsecase {
	maxBytes := int64(defaultMaxUploadBytes)
	if params.Config != nil && params.Config.Storage != nil && params.Config.Storage.MaxUploadBytes > 0 {
		maxBytes = params.Config.Storage.MaxUploadBytes
	}

	return &mediaService{
		mediaRepo: params.MediaRepo,
		blobs:     params.BlobStore,
		maxBytes:  maxBytes,
		now:       time.Now,
		logger:    params.Logger,
	}
}

func (srv *mediaService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Upload stores an image in the bucket, then records its metadata.
func (srv *mediaService) Upload(ctx context.Context, input *usecase.UploadMediaInput) (*entity.Media, error) {
	if len(input.Data) == 0 {
		return nil, domainerrors.NewValidationError(map[string]string{"file": "required"})
	}
	if int64(len(input.Data)) > srv.maxBytes {
		return nil, domainerrors.ErrMediaTooLarge.WithDetails("max " + util.FormatBytes(srv.maxBytes))
	}

	contentType := mediaContentType(input.ContentType, input.Data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, domainerrors.NewValidationError(map[string]string{"file": "must be an image"})
	}

	filename := path.Base(strings.TrimSpace(input.Filename))
	if filename == "." || filename == "/" {
		filename = "upload"
	}

	media := &entity.Media{
		Filename:   filename,
		Alt:        strings.TrimSpace(input.Alt),
		Caption:    strings.TrimSpace(input.Caption),
		Category:   strings.TrimSpace(input.Category),
		MimeType:   contentType,
		Size:       int64(len(input.Data)),
		StorageKey: mediaKeyPrefix + uuid.NewString() + mediaExtension(filename, contentType),
		CreatedAt:  srv.now(),
	}

	if err := srv.blobs.Put(ctx, media.StorageKey, input.Data, contentType); err != nil {
		return nil, errors.Wrap(err, "failed to store media bytes")
	}

	if err := srv.mediaRepo.Create(ctx, media); err != nil {
		if delErr := srv.blobs.Delete(ctx, media.StorageKey); delErr != nil {
			srv.log(ctx).Warn("Failed to remove orphaned media object", slog.String("key", media.StorageKey), slog.Any("error", delErr))
		}

		return nil, errors.Wrap(err, "failed to record media")
	}

	srv.log(ctx).Info("Media uploaded", slog.String("media_id", media.ID), slog.Int64("size", media.Size))

	return media, nil
}

func (srv *mediaService) Open(ctx context.Context, id string) (*entity.Media, io.ReadCloser, error) {
	media, err := srv.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := srv.blobs.Open(ctx, media.StorageKey)
	if err != nil {
		if errors.Is(err, service.ErrBlobNotFound) {
			srv.log(ctx).Warn("Media record has no stored object", slog.String("media_id", id))

			return nil, nil, domainerrors.ErrMediaNotFound
		}

		return nil, nil, errors.Wrap(err, "failed to open media")
	}

	return media, reader, nil
}

// Delete drops the record; the stored object is removed best-effort.
func (srv *mediaService) Delete(ctx context.Context, id string) error {
	media, err := srv.find(ctx, id)
	if err != nil {
		return err
	}

	if err := srv.mediaRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return domainerrors.ErrMediaNotFound
		}

		return errors.Wrap(err, "failed to delete media")
	}

	if err := srv.blobs.Delete(ctx, media.StorageKey); err != nil {
		srv.log(ctx).Warn("Failed to delete media object", slog.String("key", media.StorageKey), slog.Any("error", err))
	}

	return nil
}

func (srv *mediaService) find(ctx context.Context, id string) (*entity.Media, error) {
	media, err := srv.mediaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return nil, domainerrors.ErrMediaNotFound
		}

		return nil, errors.Wrap(err, "failed to find media")
	}

	return media, nil
}

// mediaContentType trusts a declared image type, otherwise sniffs the bytes.
func mediaContentType(declared string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && strings.HasPrefix(mediaType, "image/") {
		return mediaType
	}

	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(data))

	return sniffed
}

func mediaExtension(filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" {
		return ext
	}

	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}

	return ""
}
