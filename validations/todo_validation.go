package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainTodo "github.com/estudia-app/estudia/domains/todo"
	pkgError "github.com/estudia-app/estudia/pkg/error"
)

func priorityRule() validation.Rule {
	return validation.In(
		string(domainTodo.PriorityLow),
		string(domainTodo.PriorityMedium),
		string(domainTodo.PriorityHigh),
	)
}

func ValidateCreateTodo(ctx context.Context, request domainTodo.CreateTodoRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.UserID, validation.Required),
		validation.Field(&request.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&request.Description, validation.Length(0, 1000)),
		validation.Field(&request.Priority, validation.By(func(value interface{}) error {
			p, _ := value.(domainTodo.Priority)
			if p == "" {
				return nil
			}
			return priorityRule().Validate(string(p))
		})),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateUpdateTodo(ctx context.Context, request domainTodo.UpdateTodoRequest) error {
	if request.Title != nil {
		if err := validation.Validate(*request.Title, validation.Required, validation.Length(1, 200)); err != nil {
			return pkgError.ValidationError("title: " + err.Error())
		}
	}
	if request.Description != nil {
		if err := validation.Validate(*request.Description, validation.Length(0, 1000)); err != nil {
			return pkgError.ValidationError("description: " + err.Error())
		}
	}
	if request.Priority != nil {
		if err := priorityRule().Validate(string(*request.Priority)); err != nil {
			return pkgError.ValidationError("priority: " + err.Error())
		}
	}
	return nil
}
