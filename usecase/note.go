package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/estudia-app/estudia/core/config"
	domainExplanation "github.com/estudia-app/estudia/domains/explanation"
	domainNote "github.com/estudia-app/estudia/domains/note"
	domainSubject "github.com/estudia-app/estudia/domains/subject"
	pkgError "github.com/estudia-app/estudia/pkg/error"
	"github.com/estudia-app/estudia/pkg/imagetools"
	"github.com/estudia-app/estudia/pkg/jobworker"
	"github.com/estudia-app/estudia/pkg/utils"
	studyaiDomain "github.com/estudia-app/estudia/studyai/domain"
	"github.com/estudia-app/estudia/validations"
)

// noteOCR is the slice of the AI engine the note pipeline needs.
type noteOCR interface {
	SupportsOCR() bool
	ExtractText(ctx context.Context, req studyaiDomain.OCRRequest) (*studyaiDomain.OCRResult, error)
}

// NoteEventPublisher notifies connected clients when a note finishes
// processing. Implemented by the websocket hub.
type NoteEventPublisher interface {
	PublishNoteProcessed(userID string, note *domainNote.ClassNote)
}

type noteService struct {
	repo        domainNote.INoteRepository
	subjectRepo domainSubject.ISubjectRepository
	explainer   domainExplanation.IExplanationUsecase
	ocr         noteOCR
	pool        *jobworker.Pool
	publisher   NoteEventPublisher
}

func NewNoteService(
	repo domainNote.INoteRepository,
	subjectRepo domainSubject.ISubjectRepository,
	explainer domainExplanation.IExplanationUsecase,
	ocr noteOCR,
	pool *jobworker.Pool,
	publisher NoteEventPublisher,
) domainNote.INoteUsecase {
	return &noteService{
		repo:        repo,
		subjectRepo: subjectRepo,
		explainer:   explainer,
		ocr:         ocr,
		pool:        pool,
		publisher:   publisher,
	}
}

// Create stores the note and, when an image is attached, queues the OCR +
// explanation pipeline. The HTTP response never waits for the AI.
func (s *noteService) Create(ctx context.Context, request domainNote.CreateNoteRequest) (*domainNote.ClassNote, error) {
	if err := validations.ValidateCreateNote(ctx, request); err != nil {
		return nil, err
	}

	n := &domainNote.ClassNote{
		UserID:    request.UserID,
		Title:     request.Title,
		Content:   request.Content,
		SubjectID: request.SubjectID,
		Status:    domainNote.StatusDone,
	}

	if len(request.ImageData) > 0 {
		if !s.ocr.SupportsOCR() {
			return nil, pkgError.ValidationError("image processing is not available: no multimodal AI credentials configured.")
		}
		imagePath, err := s.storeImage(request.UserID, request.ImageData, request.ImageMime)
		if err != nil {
			return nil, err
		}
		n.ImagePath = imagePath
		n.Status = domainNote.StatusPending
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if n.Status == domainNote.StatusPending {
		s.dispatch(n.ID, n.UserID, request.ImageData, request.ImageMime)
	}

	return n, nil
}

// dispatch queues the processing job. A full queue marks the note failed
// immediately instead of blocking the request.
func (s *noteService) dispatch(noteID, userID string, imageData []byte, imageMime string) {
	accepted := s.pool.TryDispatch(jobworker.Job{
		UserID: userID,
		NoteID: noteID,
		Handler: func(ctx context.Context) error {
			return s.process(ctx, noteID, imageData, imageMime)
		},
	})
	if !accepted {
		logrus.WithField("note_id", noteID).Warn("[NOTE] Worker queue full, marking note failed")
		s.markFailed(context.Background(), noteID, "processing queue is full, retry later")
	}
}

// process runs inside a worker: prepare image, OCR, explain, persist.
func (s *noteService) process(ctx context.Context, noteID string, imageData []byte, imageMime string) error {
	n, err := s.repo.GetByID(ctx, noteID)
	if err != nil {
		return err
	}

	n.Status = domainNote.StatusProcessing
	n.StatusDetail = ""
	if err := s.repo.Update(ctx, n); err != nil {
		return err
	}

	maxBytes := int64(4 * 1024 * 1024)
	if config.Global != nil && config.Global.AI.MaxImageBytes > 0 {
		maxBytes = config.Global.AI.MaxImageBytes
	}

	prepared, preparedMime, err := imagetools.Prepare(imageData, imageMime, maxBytes)
	if err != nil {
		s.markFailed(ctx, noteID, fmt.Sprintf("image preparation failed: %v", err))
		return err
	}

	hint := s.subjectName(ctx, n.SubjectID)

	ocrResult, err := s.ocr.ExtractText(ctx, studyaiDomain.OCRRequest{
		ImageData: prepared,
		MimeType:  preparedMime,
		Hint:      hint,
	})
	if err != nil {
		s.markFailed(ctx, noteID, fmt.Sprintf("ocr failed: %v", err))
		return err
	}

	n.ExtractedText = ocrResult.Text

	if ocrResult.Text != "" {
		// Explain nunca falla más allá de la validación; un fallo del
		// generador produce el texto de respaldo con Source=fallback.
		result, err := s.explainer.Explain(ctx, domainExplanation.ExplainRequest{
			UserID:      n.UserID,
			Text:        ocrResult.Text,
			SubjectHint: hint,
		})
		if err == nil {
			n.AIExplanation = result.Explanation
		}
	}

	n.Status = domainNote.StatusDone
	n.StatusDetail = ""
	if err := s.repo.Update(ctx, n); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"note_id": noteID,
		"chars":   len(n.ExtractedText),
	}).Info("[NOTE] Processing completed")

	if s.publisher != nil {
		s.publisher.PublishNoteProcessed(n.UserID, n)
	}
	return nil
}

func (s *noteService) markFailed(ctx context.Context, noteID, detail string) {
	n, err := s.repo.GetByID(ctx, noteID)
	if err != nil {
		return
	}
	n.Status = domainNote.StatusFailed
	n.StatusDetail = detail
	if err := s.repo.Update(ctx, n); err != nil {
		logrus.WithError(err).Error("[NOTE] Failed to record failure state")
		return
	}
	if s.publisher != nil {
		s.publisher.PublishNoteProcessed(n.UserID, n)
	}
}

// subjectName resolves the subject for use as an AI hint; empty on any miss.
func (s *noteService) subjectName(ctx context.Context, subjectID string) string {
	if subjectID == "" || s.subjectRepo == nil {
		return ""
	}
	subj, err := s.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		return ""
	}
	return subj.Name
}

func (s *noteService) storeImage(userID string, data []byte, mime string) (string, error) {
	uploads := "storages/uploads"
	if config.Global != nil && config.Global.Paths.Uploads != "" {
		uploads = config.Global.Paths.Uploads
	}
	dir := filepath.Join(uploads, userID)
	if err := utils.CreateFolder(dir); err != nil {
		return "", err
	}

	ext := ".jpg"
	switch mime {
	case "image/png":
		ext = ".png"
	case "image/webp":
		ext = ".webp"
	}
	path := filepath.Join(dir, uuid.New().String()+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *noteService) GetByID(ctx context.Context, id string) (*domainNote.ClassNote, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *noteService) ListByUser(ctx context.Context, userID string) ([]*domainNote.ClassNote, error) {
	if err := validations.ValidateUserID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *noteService) Update(ctx context.Context, id string, request domainNote.UpdateNoteRequest) (*domainNote.ClassNote, error) {
	if err := validations.ValidateUpdateNote(ctx, request); err != nil {
		return nil, err
	}

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		n.Title = *request.Title
	}
	if request.Content != nil {
		n.Content = *request.Content
	}
	if request.SubjectID != nil {
		n.SubjectID = *request.SubjectID
	}

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.ImagePath != "" {
		if err := os.Remove(n.ImagePath); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).Warn("[NOTE] Could not remove note image")
		}
	}
	return s.repo.Delete(ctx, id)
}

// Reprocess re-runs the pipeline using the stored image.
func (s *noteService) Reprocess(ctx context.Context, id string) (*domainNote.ClassNote, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.ImagePath == "" {
		return nil, pkgError.ValidationError("note has no attached image.")
	}
	if !s.ocr.SupportsOCR() {
		return nil, pkgError.ValidationError("image processing is not available: no multimodal AI credentials configured.")
	}

	data, err := os.ReadFile(n.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("stored image unreadable: %w", err)
	}

	mime := "image/jpeg"
	switch filepath.Ext(n.ImagePath) {
	case ".png":
		mime = "image/png"
	case ".webp":
		mime = "image/webp"
	}

	n.Status = domainNote.StatusPending
	n.StatusDetail = ""
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}

	s.dispatch(n.ID, n.UserID, data, mime)
	return n, nil
}
