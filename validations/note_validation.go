package validations

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/estudia-app/estudia/core/config"
	domainNote "github.com/estudia-app/estudia/domains/note"
	pkgError "github.com/estudia-app/estudia/pkg/error"
)

var allowedImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func ValidateCreateNote(ctx context.Context, request domainNote.CreateNoteRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.UserID, validation.Required),
		validation.Field(&request.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&request.Content, validation.Length(0, 10000)),
	)
	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	if len(request.ImageData) > 0 {
		if !allowedImageMimes[request.ImageMime] {
			return pkgError.ValidationError(fmt.Sprintf("image: unsupported type %q.", request.ImageMime))
		}
		// El límite duro de subida es generoso; imagetools reduce después al
		// límite del proveedor.
		maxUpload := int64(15 * 1024 * 1024)
		if config.Global != nil && config.Global.AI.MaxImageBytes > maxUpload {
			maxUpload = config.Global.AI.MaxImageBytes
		}
		if int64(len(request.ImageData)) > maxUpload {
			return pkgError.ValidationError("image: file too large.")
		}
	}

	return nil
}

func ValidateUpdateNote(ctx context.Context, request domainNote.UpdateNoteRequest) error {
	if request.Title != nil {
		if err := validation.Validate(*request.Title, validation.Required, validation.Length(1, 200)); err != nil {
			return pkgError.ValidationError("title: " + err.Error())
		}
	}
	if request.Content != nil {
		if err := validation.Validate(*request.Content, validation.Length(0, 10000)); err != nil {
			return pkgError.ValidationError("content: " + err.Error())
		}
	}
	return nil
}
