package wire

import (
	"SimPulse/internal/api"
	"SimPulse/internal/api/config"
	"SimPulse/internal/api/handler"
	"SimPulse/internal/job"
	"SimPulse/internal/pkg/cron"
	"SimPulse/internal/pkg/llm"
	"SimPulse/internal/pkg/redis"
	"SimPulse/internal/pkg/video"
	"SimPulse/internal/platform"
	"SimPulse/internal/repository"
	"SimPulse/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	uploadRepo := repository.NewUploadRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	simRepo := repository.NewSimulationRepository(db)
	snapshotRepo := repository.NewMetricSnapshotRepository(db)
	jobRepo := repository.NewScheduledJobRepository(db)

	platforms := platform.NewRegistry(&cfg.Platforms)
	generator := video.NewGenerator(&cfg.Video)
	analyzer := llm.NewAnalyzer()

	metricsService := service.NewMetricsService(
		uploadRepo,
		snapshotRepo,
		platforms,
		redis.NewCache(),
		time.Duration(cfg.Platforms.FetchTimeout)*time.Second,
		cfg.Metrics.RetentionDays,
	)
	uploadService := service.NewUploadService(
		uploadRepo,
		videoRepo,
		simRepo,
		snapshotRepo,
		platforms,
		generator,
		analyzer,
		cfg.Video.Variations,
		cfg.Video.DailyPicks,
	)
	dashboardService := service.NewDashboardService(uploadRepo, videoRepo, snapshotRepo)
	simulationService := service.NewSimulationService(simRepo)
	taskService := service.NewTaskService(jobRepo, metricsService, uploadService, redis.NewLocker())

	handlers := &api.HandlersGroup{
		MetricsHandler:    handler.NewMetricsHandler(metricsService),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, uploadService),
		SimulationHandler: handler.NewSimulationHandler(simulationService),
		TaskHandler:       handler.NewTaskHandler(taskService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		job.NewMetricSnapshotJob(metricsService, redis.NewLocker()),
		job.NewDailyUploadJob(uploadService),
		job.NewSnapshotCleanupJob(metricsService),
	)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
