package validations

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/estudia-app/estudia/core/config"
	domainExplanation "github.com/estudia-app/estudia/domains/explanation"
	pkgError "github.com/estudia-app/estudia/pkg/error"
)

func ValidateExplainRequest(ctx context.Context, request domainExplanation.ExplainRequest) error {
	if strings.TrimSpace(request.Text) == "" {
		return pkgError.ValidationError("text: cannot be blank.")
	}

	maxLen := 5000
	if config.Global != nil && config.Global.AI.MaxTextLength > 0 {
		maxLen = config.Global.AI.MaxTextLength
	}

	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Text, validation.Required, validation.Length(1, maxLen)),
		validation.Field(&request.SubjectHint, validation.Length(0, 100)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateUserID(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return pkgError.ValidationError("user_id: cannot be blank.")
	}
	return nil
}
