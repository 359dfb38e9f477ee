package usecase

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/estudia-app/estudia/core/config"
	domainExplanation "github.com/estudia-app/estudia/domains/explanation"
	domainNote "github.com/estudia-app/estudia/domains/note"
	"github.com/estudia-app/estudia/pkg/jobworker"
	studyaiDomain "github.com/estudia-app/estudia/studyai/domain"
)

type fakeNoteRepo struct {
	mu    sync.Mutex
	notes map[string]*domainNote.ClassNote
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[string]*domainNote.ClassNote)}
}

func (r *fakeNoteRepo) Create(ctx context.Context, n *domainNote.ClassNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	copy := *n
	r.notes[n.ID] = &copy
	return nil
}

func (r *fakeNoteRepo) GetByID(ctx context.Context, id string) (*domainNote.ClassNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok {
		return nil, domainNote.ErrNoteNotFound
	}
	copy := *n
	return &copy, nil
}

func (r *fakeNoteRepo) ListByUser(ctx context.Context, userID string) ([]*domainNote.ClassNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domainNote.ClassNote
	for _, n := range r.notes {
		if n.UserID == userID {
			copy := *n
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, n *domainNote.ClassNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[n.ID]; !ok {
		return domainNote.ErrNoteNotFound
	}
	copy := *n
	r.notes[n.ID] = &copy
	return nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notes, id)
	return nil
}

type fakeOCR struct {
	supported bool
	text      string
	fail      bool
}

func (o *fakeOCR) SupportsOCR() bool { return o.supported }

func (o *fakeOCR) ExtractText(ctx context.Context, req studyaiDomain.OCRRequest) (*studyaiDomain.OCRResult, error) {
	if o.fail {
		return nil, errors.New("ocr exploded")
	}
	return &studyaiDomain.OCRResult{Text: o.text}, nil
}

type fakeExplainer struct {
	lastHint string
}

func (e *fakeExplainer) Explain(ctx context.Context, req domainExplanation.ExplainRequest) (domainExplanation.AIExplanation, error) {
	e.lastHint = req.SubjectHint
	return domainExplanation.AIExplanation{
		Explanation: "explicación de: " + req.Text,
		Source:      domainExplanation.SourceGenerated,
	}, nil
}

func (e *fakeExplainer) History(ctx context.Context, userID string) ([]*domainExplanation.Record, error) {
	return nil, nil
}

func (e *fakeExplainer) Stats(ctx context.Context, userID string) (domainExplanation.CacheStats, error) {
	return domainExplanation.CacheStats{}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*domainNote.ClassNote
}

func (p *fakePublisher) PublishNoteProcessed(userID string, n *domainNote.ClassNote) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, n)
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func newTestNoteService(t *testing.T, repo *fakeNoteRepo, ocr *fakeOCR, explainer *fakeExplainer, publisher *fakePublisher) domainNote.INoteUsecase {
	t.Helper()

	// Uploads van a un directorio temporal, no al storages/ real.
	orig := config.Global
	tmp := t.TempDir()
	config.Global = &config.Config{
		Paths: config.PathsConfig{Storages: tmp, Uploads: tmp},
		AI:    config.AIConfig{MaxImageBytes: 4 * 1024 * 1024, MaxTextLength: 5000},
	}
	t.Cleanup(func() { config.Global = orig })

	pool := jobworker.NewPool(2, 10)
	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)
	t.Cleanup(func() {
		pool.Stop()
		cancel()
	})
	return NewNoteService(repo, newFakeSubjectRepo(), explainer, ocr, pool, publisher)
}

func TestNoteService_CreateWithoutImage(t *testing.T) {
	repo := newFakeNoteRepo()
	svc := newTestNoteService(t, repo, &fakeOCR{supported: true}, &fakeExplainer{}, &fakePublisher{})

	n, err := svc.Create(context.Background(), domainNote.CreateNoteRequest{
		UserID: "user-1",
		Title:  "Apunte de clase",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if n.Status != domainNote.StatusDone {
		t.Fatalf("note without image should be done immediately, got %q", n.Status)
	}
}

func TestNoteService_CreateWithImageRequiresOCR(t *testing.T) {
	repo := newFakeNoteRepo()
	svc := newTestNoteService(t, repo, &fakeOCR{supported: false}, &fakeExplainer{}, &fakePublisher{})

	_, err := svc.Create(context.Background(), domainNote.CreateNoteRequest{
		UserID:    "user-1",
		Title:     "Foto de pizarra",
		ImageData: testPNG(t),
		ImageMime: "image/png",
	})
	if err == nil {
		t.Fatal("Create() with image but no OCR backend should fail")
	}
}

func TestNoteService_AsyncPipeline(t *testing.T) {
	repo := newFakeNoteRepo()
	publisher := &fakePublisher{}
	ocr := &fakeOCR{supported: true, text: "la derivada de x^2 es 2x"}
	explainer := &fakeExplainer{}
	svc := newTestNoteService(t, repo, ocr, explainer, publisher)

	n, err := svc.Create(context.Background(), domainNote.CreateNoteRequest{
		UserID:    "user-1",
		Title:     "Foto de apunte",
		ImageData: testPNG(t),
		ImageMime: "image/png",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if n.Status != domainNote.StatusPending {
		t.Fatalf("note with image should start pending, got %q", n.Status)
	}

	deadline := time.After(3 * time.Second)
	for {
		processed, err := svc.GetByID(context.Background(), n.ID)
		if err != nil {
			t.Fatalf("GetByID() unexpected error: %v", err)
		}
		if processed.Status == domainNote.StatusDone {
			if processed.ExtractedText != ocr.text {
				t.Fatalf("extracted text = %q, want %q", processed.ExtractedText, ocr.text)
			}
			if processed.AIExplanation == "" {
				t.Fatal("processed note should carry an AI explanation")
			}
			break
		}
		if processed.Status == domainNote.StatusFailed {
			t.Fatalf("pipeline failed: %s", processed.StatusDetail)
		}
		select {
		case <-deadline:
			t.Fatalf("timeout, note stuck in %q", processed.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}

	if publisher.count() == 0 {
		t.Fatal("processing should publish a NOTE_PROCESSED event")
	}
}

func TestNoteService_OCRFailureMarksFailed(t *testing.T) {
	repo := newFakeNoteRepo()
	publisher := &fakePublisher{}
	svc := newTestNoteService(t, repo, &fakeOCR{supported: true, fail: true}, &fakeExplainer{}, publisher)

	n, err := svc.Create(context.Background(), domainNote.CreateNoteRequest{
		UserID:    "user-1",
		Title:     "Foto ilegible",
		ImageData: testPNG(t),
		ImageMime: "image/png",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		processed, err := svc.GetByID(context.Background(), n.ID)
		if err != nil {
			t.Fatalf("GetByID() unexpected error: %v", err)
		}
		if processed.Status == domainNote.StatusFailed {
			if processed.StatusDetail == "" {
				t.Fatal("failed note should record the failure detail")
			}
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timeout, note stuck in %q", processed.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
