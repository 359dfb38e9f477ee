package rest

import (
	"errors"

	domainExplanation "github.com/estudia-app/estudia/domains/explanation"
	domainNote "github.com/estudia-app/estudia/domains/note"
	domainSubject "github.com/estudia-app/estudia/domains/subject"
	domainTodo "github.com/estudia-app/estudia/domains/todo"
	pkgError "github.com/estudia-app/estudia/pkg/error"
	"github.com/estudia-app/estudia/pkg/utils"
)

// panicIfNeeded maps domain sentinel errors onto typed API errors before
// delegating to the recovery middleware.
func panicIfNeeded(err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, domainSubject.ErrSubjectNotFound),
		errors.Is(err, domainTodo.ErrTodoNotFound),
		errors.Is(err, domainNote.ErrNoteNotFound),
		errors.Is(err, domainExplanation.ErrNotFound):
		panic(pkgError.NotFoundError(err.Error()))
	case errors.Is(err, domainExplanation.ErrStoreUnavailable):
		panic(pkgError.UpstreamError(err.Error()))
	}
	utils.PanicIfNeeded(err)
}
