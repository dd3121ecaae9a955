package bootstrap

import (
	"github.com/oraclehub-commits/brain-hub/internal/config"
	"github.com/oraclehub-commits/brain-hub/internal/controller"
	"github.com/oraclehub-commits/brain-hub/internal/pkg/logger"
	"github.com/oraclehub-commits/brain-hub/internal/repository/memory"
	"github.com/oraclehub-commits/brain-hub/internal/repository/unitofwork"
	"github.com/oraclehub-commits/brain-hub/internal/service"
	"github.com/oraclehub-commits/brain-hub/pkg/chatbot"
	"github.com/oraclehub-commits/brain-hub/pkg/oracle/topics"
	"github.com/oraclehub-commits/brain-hub/pkg/oracle/whisper"

	"gorm.io/gorm"
)

type Container struct {
	OracleController controller.IOracleController
	Logger           logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. External collaborators. The Gemini client is constructed here and
	// injected, its lifecycle belongs to the request-handling layer.
	geminiClient := chatbot.NewGeminiClient(cfg.Keys.GoogleGemini, cfg.Ai.RequestTimeout)

	// 3. In-memory caches
	profileCache := memory.NewProfileCache()

	// 4. Domain components
	whisperEngine := whisper.NewEngine(topics.NewJapaneseBusinessExtractor())

	oracleService := service.NewOracleService(
		uowFactory,
		geminiClient,
		profileCache,
		whisperEngine,
		sysLogger,
		cfg.Ai.FreeModel,
		cfg.Ai.ProModel,
	)

	return &Container{
		OracleController: controller.NewOracleController(oracleService),
		Logger:           sysLogger,
	}
}
