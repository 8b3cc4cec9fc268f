package consts

// 平台名，闭集
const (
	PlatformYouTube   = "youtube"
	PlatformTikTok    = "tiktok"
	PlatformInstagram = "instagram"
)

// Upload 状态
const (
	UploadStatusPending   = "pending"
	UploadStatusPublished = "published"
	UploadStatusFailed    = "failed"
)

// Video 状态
const (
	VideoStatusGenerated = "generated"
	VideoStatusSelected  = "selected"
)

// Simulation 状态
const (
	SimulationStatusPending   = "pending"
	SimulationStatusCompleted = "completed"
	SimulationStatusFailed    = "failed"
)

// ScheduledJob 状态与类型
const (
	TaskStatusPending   = "pending"
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"

	TaskTypeDailyUpload = "daily_upload"
	TaskTypeMetricsSync = "metrics_sync"
	TaskTypeCleanup     = "cleanup"
)

// SnapshotRetentionDays 指标快照保留天数
const SnapshotRetentionDays = 30

// SimulationTypes 每日生成的物理模拟类型
var SimulationTypes = []string{
	"bouncing_balls",
	"particle_physics",
	"fluid_dynamics",
	"gravity_sim",
}
