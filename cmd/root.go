package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	coreconfig "github.com/estudia-app/estudia/core/config"
	coreDB "github.com/estudia-app/estudia/core/database"
	domainExplanation "github.com/estudia-app/estudia/domains/explanation"
	domainHealth "github.com/estudia-app/estudia/domains/health"
	domainNote "github.com/estudia-app/estudia/domains/note"
	domainSubject "github.com/estudia-app/estudia/domains/subject"
	domainTodo "github.com/estudia-app/estudia/domains/todo"
	"github.com/estudia-app/estudia/infrastructure/valkey"
	"github.com/estudia-app/estudia/pkg/jobworker"
	"github.com/estudia-app/estudia/pkg/utils"
	"github.com/estudia-app/estudia/repository"
	"github.com/estudia-app/estudia/studyai"
	uiWebsocket "github.com/estudia-app/estudia/ui/websocket"
	"github.com/estudia-app/estudia/usecase"
)

var (
	db       *gorm.DB
	vkClient *valkey.Client
	engine   *studyai.Engine
	pool     *jobworker.Pool

	appCancel context.CancelFunc

	explanationUsecase domainExplanation.IExplanationUsecase
	subjectUsecase     domainSubject.ISubjectUsecase
	todoUsecase        domainTodo.ITodoUsecase
	noteUsecase        domainNote.INoteUsecase
	healthUsecase      domainHealth.IHealthUsecase
)

var rootCmd = &cobra.Command{
	Use:   "estudia",
	Short: "Estudia student productivity backend",
	Long: `Backend service for the Estudia study app: subjects, todos and
class notes with AI-generated explanations backed by a content-addressed
cache, OCR of note photos, and realtime processing events.`,
}

func init() {
	time.Local = time.UTC
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	cobra.OnInitialize(initApp)
}

func initApp() {
	cfg, err := coreconfig.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := utils.CreateFolder(cfg.Paths.Storages, cfg.Paths.Uploads); err != nil {
		logrus.Fatalf("Failed to prepare storage folders: %v", err)
	}

	db, err = coreDB.NewDatabase(cfg)
	if err != nil {
		logrus.Fatalf("Failed to connect database: %v", err)
	}

	appCtx, cancel := context.WithCancel(context.Background())
	appCancel = cancel

	// Repositories + schema
	explanationRepo := repository.NewExplanationGormRepository(db)
	subjectRepo := repository.NewSubjectGormRepository(db)
	todoRepo := repository.NewTodoGormRepository(db)
	noteRepo := repository.NewNoteGormRepository(db)

	for name, initSchema := range map[string]func(context.Context) error{
		"ai_explanations": explanationRepo.InitSchema,
		"subjects":        subjectRepo.InitSchema,
		"todos":           todoRepo.InitSchema,
		"class_notes":     noteRepo.InitSchema,
	} {
		if err := initSchema(appCtx); err != nil {
			logrus.Fatalf("Failed to migrate %s: %v", name, err)
		}
	}

	// Valkey is optional; the app runs fine without the L1 cache.
	if cfg.Valkey.Enabled {
		vkClient, err = valkey.NewClient(valkey.Config{
			Address:   cfg.Valkey.Address,
			Password:  cfg.Valkey.Password,
			DB:        cfg.Valkey.DB,
			KeyPrefix: cfg.Valkey.KeyPrefix,
		})
		if err != nil {
			logrus.WithError(err).Warn("[INIT] Valkey unavailable, continuing without L1 cache")
			vkClient = nil
		}
	}

	engine = studyai.NewEngine(cfg.AI)

	pool = jobworker.NewPool(cfg.WorkerPool.Size, cfg.WorkerPool.QueueSize)
	pool.Start(appCtx)

	hub := uiWebsocket.NewHub()

	var l1 usecase.ExplanationL1
	if vkClient != nil {
		l1 = vkClient
	}
	explanationUsecase = usecase.NewExplanationService(explanationRepo, engine, l1)
	subjectUsecase = usecase.NewSubjectService(subjectRepo)
	todoUsecase = usecase.NewTodoService(todoRepo)
	noteUsecase = usecase.NewNoteService(noteRepo, subjectRepo, explanationUsecase, engine, pool, hub)

	healthUsecase = usecase.NewHealthService(db, vkClient, engine)
	healthUsecase.StartPeriodicChecks(appCtx)

	logrus.WithFields(logrus.Fields{
		"db_driver":   cfg.Database.Driver,
		"ai_provider": engine.ProviderName(),
		"ai_disabled": engine.Disabled(),
		"valkey":      vkClient != nil,
	}).Info("[INIT] Application initialized")
}

// StopApp releases background resources during graceful shutdown.
func StopApp() {
	if pool != nil {
		pool.Stop()
	}
	if appCancel != nil {
		appCancel()
	}
	if vkClient != nil {
		vkClient.Close()
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
