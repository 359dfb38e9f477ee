package validations

import (
	"context"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainSubject "github.com/estudia-app/estudia/domains/subject"
	pkgError "github.com/estudia-app/estudia/pkg/error"
)

var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func ValidateCreateSubject(ctx context.Context, request domainSubject.CreateSubjectRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.UserID, validation.Required),
		validation.Field(&request.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&request.Color, validation.Match(hexColorRegex)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateUpdateSubject(ctx context.Context, request domainSubject.UpdateSubjectRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&request.Color, validation.Match(hexColorRegex)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
