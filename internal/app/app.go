// Package app wires configuration, engines, stores, and the HTTP
// surface into a runnable service.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"paramedai/internal/clinical"
	"paramedai/internal/config"
	"paramedai/internal/knowledge"
	"paramedai/internal/llm"
	"paramedai/internal/media"
	"paramedai/internal/patients"
	"paramedai/internal/router"
	"paramedai/internal/server"
	"paramedai/internal/stt"
	"paramedai/internal/triage"
)

type App struct {
	server *server.Server
	router *router.Router
	cancel context.CancelFunc
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	remote := buildRemoteEngine(ctx, cfg)
	local := llm.Chain(buildLocalEngine(cfg), llm.WithLogging(nil))

	healthURL := cfg.Router.HealthURL
	if healthURL == "" && remote != nil {
		healthURL = cfg.Online.BaseURL
	}
	remoteModel := cfg.Online.Model
	if cfg.Online.GeminiAPIKey != "" {
		remoteModel = cfg.Online.GeminiModel
	}
	rtr := router.New(remote, local, healthURL, remoteModel, cfg.Local.Model,
		router.WithInterval(cfg.Router.Interval))
	rtr.Start(ctx)

	protocols, err := knowledge.LoadDir(cfg.Knowledge.ProtocolsDir)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to load protocols: %w", err)
	}
	if len(protocols) == 0 {
		protocols = knowledge.Builtin()
	}
	retriever := knowledge.NewRetriever(protocols)
	log.Printf("[app] knowledge base loaded with %d protocols", retriever.Len())

	store := patients.NewFromEnv(cfg.Patients.FilePath)

	archive, err := media.New(media.Config{
		Endpoint:  cfg.Media.Endpoint,
		Region:    cfg.Media.Region,
		AccessKey: cfg.Media.AccessKey,
		SecretKey: cfg.Media.SecretKey,
		Bucket:    cfg.Media.Bucket,
		UseSSL:    cfg.Media.UseSSL,
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to init media archive: %w", err)
	}

	handler := server.NewHandler(server.Deps{
		Clinical:     clinical.NewService(rtr, retriever),
		Orchestrator: triage.NewOrchestrator(rtr.Routed()),
		Router:       rtr,
		Retriever:    retriever,
		Patients:     store,
		Transcriber:  stt.NewWhisperClient(cfg.STT.BaseURL, cfg.STT.APIKey, cfg.STT.Model),
		Archive:      archive,
		WhisperModel: cfg.STT.Model,
	})

	return &App{
		server: server.New(cfg.Port, server.NewMux(handler)),
		router: rtr,
		cancel: cancel,
	}, nil
}

// buildLocalEngine returns the on-device backend. With LOCAL_MODEL_PATH
// set, the local server is treated as a loadable model: the first
// generation verifies the model file is actually served before any
// tokens are requested. Without it the server is trusted as-is.
func buildLocalEngine(cfg *config.Config) llm.Engine {
	if cfg.Local.ModelPath != "" {
		model := llm.NewServerModel(cfg.Local.BaseURL, cfg.Local.Model)
		return llm.NewLocalEngine(model, cfg.Local.ModelPath, cfg.Local.Model)
	}
	return llm.NewOpenAIEngine(cfg.Local.BaseURL, "", cfg.Local.Model)
}

func buildRemoteEngine(ctx context.Context, cfg *config.Config) llm.Engine {
	retry := llm.Retry(3, 500*time.Millisecond)

	if cfg.Online.GeminiAPIKey != "" {
		g, err := llm.NewGeminiEngine(ctx, cfg.Online.GeminiModel)
		if err == nil {
			return llm.Chain(g, retry, llm.WithLogging(nil))
		}
		log.Printf("[app] gemini init failed, falling back to OpenAI-compatible backend: %v", err)
	}
	if cfg.Online.APIKey == "" {
		return nil
	}
	return llm.Chain(
		llm.NewOpenAIEngine(cfg.Online.BaseURL, cfg.Online.APIKey, cfg.Online.Model),
		retry,
		llm.WithLogging(nil),
	)
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.cancel()
	return a.server.Shutdown(ctx)
}
