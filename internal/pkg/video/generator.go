package video

import (
	"SimPulse/internal/api/config"
	"SimPulse/internal/pkg/minio"
	"context"
	"fmt"
	log "log/slog"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/goccy/go-json"
)

// Artifact 一次生成产出的视频制品
type Artifact struct {
	ObjectKey  string // MinIO 中的视频对象
	PreviewKey string // 评分用预览帧对象
	Duration   int    // 秒
}

// Generator 物理模拟视频生成器
type Generator interface {
	Generate(ctx context.Context, videoKey string, simType string, params map[string]float64) (*Artifact, error)
}

type ffmpegGenerator struct {
	ffmpeg    string
	scriptDir string
	workDir   string
}

// NewGenerator 返回调用模拟脚本与 ffmpeg 的 Generator
func NewGenerator(cfg *config.VideoConfig) Generator {
	return &ffmpegGenerator{
		ffmpeg:    cfg.FFmpeg,
		scriptDir: cfg.ScriptDir,
		workDir:   cfg.WorkDir,
	}
}

// RandomParams 为指定模拟类型生成一组随机参数
func RandomParams(simType string) map[string]float64 {
	params := map[string]float64{
		"duration": 30,
		"fps":      60,
	}

	switch simType {
	case "bouncing_balls":
		params["ball_count"] = float64(5 + rand.Intn(20))
		params["gravity"] = 400 + rand.Float64()*600
		params["restitution"] = 0.7 + rand.Float64()*0.25
	case "particle_physics":
		params["particle_count"] = float64(200 + rand.Intn(800))
		params["attraction"] = rand.Float64() * 2
	case "fluid_dynamics":
		params["viscosity"] = 0.5 + rand.Float64()
		params["flow_rate"] = 10 + rand.Float64()*40
	case "gravity_sim":
		params["body_count"] = float64(3 + rand.Intn(7))
		params["mass_range"] = 1 + rand.Float64()*9
	}

	return params
}

func (g *ffmpegGenerator) Generate(ctx context.Context, videoKey string, simType string, params map[string]float64) (*Artifact, error) {
	frameDir := filepath.Join(g.workDir, videoKey+"_frames")
	if err := os.MkdirAll(frameDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create frame dir: %w", err)
	}
	defer os.RemoveAll(frameDir)

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	// 模拟脚本渲染帧序列
	script := filepath.Join(g.scriptDir, simType+".py")
	simCmd := exec.CommandContext(ctx, "python3", script,
		"--params", string(paramsJSON),
		"--out", frameDir,
	)
	if out, err := simCmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("simulation script failed: %w, output: %s", err, out)
	}

	// ffmpeg 编码为竖版短视频
	videoPath := filepath.Join(g.workDir, videoKey+".mp4")
	defer os.Remove(videoPath)

	encodeCmd := exec.CommandContext(ctx, g.ffmpeg,
		"-y",
		"-framerate", "60",
		"-i", filepath.Join(frameDir, "frame_%05d.png"),
		"-vf", "scale=1080:1920",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-t", fmt.Sprintf("%.0f", params["duration"]),
		videoPath,
	)
	if out, err := encodeCmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg encode failed: %w, output: %s", err, out)
	}

	artifact := &Artifact{
		ObjectKey:  "videos/" + videoKey + ".mp4",
		PreviewKey: "previews/" + videoKey + ".jpg",
		Duration:   int(params["duration"]),
	}

	if err = g.store(ctx, videoPath, artifact.ObjectKey, "video/mp4"); err != nil {
		return nil, err
	}

	// 取中段一帧作为评分预览
	previewPath := filepath.Join(g.workDir, videoKey+".jpg")
	defer os.Remove(previewPath)

	previewCmd := exec.CommandContext(ctx, g.ffmpeg,
		"-y",
		"-ss", fmt.Sprintf("%.0f", params["duration"]/2),
		"-i", videoPath,
		"-frames:v", "1",
		previewPath,
	)
	if out, err := previewCmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg preview failed: %w, output: %s", err, out)
	}
	if err = g.store(ctx, previewPath, artifact.PreviewKey, "image/jpeg"); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "video artifact generated", "sim_type", simType, "object_key", artifact.ObjectKey)
	return artifact, nil
}

func (g *ffmpegGenerator) store(ctx context.Context, localPath string, objectKey string, contentType string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return err
	}

	_, err = minio.UploadFile(ctx, objectKey, f, stat.Size(), contentType)
	return err
}
