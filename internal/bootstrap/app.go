package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "smartdoc-backend/internal/auth"
	"smartdoc-backend/internal/shared/config"
	"smartdoc-backend/internal/shared/server"
	"smartdoc-backend/internal/shared/storage/db"
	"smartdoc-backend/internal/shared/storage/object"
	localstore "smartdoc-backend/internal/shared/storage/object/local"
	s3store "smartdoc-backend/internal/shared/storage/object/s3"
	"smartdoc-backend/internal/summaries"
	"smartdoc-backend/internal/summarize"
	"smartdoc-backend/internal/summarize/huggingface"
	"smartdoc-backend/internal/summarize/openai"
	"smartdoc-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	SummariesRepo    summaries.SummariesRepo
	UsersRepo        users.Repo
	Engine           *summarize.Engine
	SummariesService *summaries.Service
	UsersService     *users.Service
	SummariesHandler *summaries.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Store:  store,
	}

	if err := buildRepos(ctx, cfg, app); err != nil {
		return nil, err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}
	app.Engine = engine

	userSvc := users.NewService(app.UsersRepo)
	summariesSvc := &summaries.Service{
		Store:  app.Store,
		Repo:   app.SummariesRepo,
		Engine: app.Engine,
	}

	app.UsersService = userSvc
	app.SummariesService = summariesSvc
	app.SummariesHandler = summaries.NewHandler(summariesSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		userSvc,
	)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		SummariesHandler: app.SummariesHandler,
		GoogleAuth:       app.GoogleAuth,
		UsersService:     app.UsersService,
	})

	return app, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildRepos(ctx context.Context, cfg config.Config, app *App) error {
	switch cfg.SummariesBackend {
	case "postgres":
		sqlDB, err := buildDB(ctx, cfg)
		if err != nil {
			return err
		}
		app.DB = sqlDB
		if sqlDB != nil {
			app.SummariesRepo = &summaries.PGRepo{DB: sqlDB}
			app.UsersRepo = &users.PGRepo{DB: sqlDB}
			return nil
		}
	case "firestore":
		repo, err := summaries.NewFirestoreRepo(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredsFile, cfg.FirestoreCollection)
		if err != nil {
			if !isDevLike(cfg.Env) {
				return err
			}
			log.Printf("bootstrap: firestore connect failed; using in-memory repositories: %v", err)
			break
		}
		app.SummariesRepo = repo
		// Firestore keeps no standalone user records; identity lives in the JWT.
		app.UsersRepo = users.NewMemoryRepo()
		return nil
	}

	app.SummariesRepo = summaries.NewMemoryRepo()
	app.UsersRepo = users.NewMemoryRepo()
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			_ = sqlDB.Close()
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildEngine(cfg config.Config) (*summarize.Engine, error) {
	params := summarize.Params{
		MinLength: cfg.SummaryMinLength,
		MaxLength: cfg.SummaryMaxLength,
	}

	var provider summarize.Summarizer
	switch cfg.SummarizerProvider {
	case "openai":
		// HF-style model ids carry a namespace slash; fall back to the
		// provider default rather than send one to the chat API.
		model := cfg.SummarizerModel
		if strings.Contains(model, "/") {
			model = ""
		}
		client, err := openai.NewClient(cfg.OpenAIAPIKey, model, params)
		if err != nil {
			return nil, err
		}
		provider = client
	default:
		client, err := huggingface.NewClient(cfg.HFAPIToken, cfg.SummarizerModel, params)
		if err != nil {
			return nil, err
		}
		provider = client
	}

	return summarize.InitEngine(provider, cfg.ChunkSize), nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
