package llm

import (
	"SimPulse/internal/api/config"
	"context"
	"errors"
	log "log/slog"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tmc/langchaingo/llms"
)

// VideoAnalysis 视觉模型对单条视频的评估结果
type VideoAnalysis struct {
	Score                float64 `json:"score"`
	SuggestedTitle       string  `json:"suggested_title"`
	SuggestedDescription string  `json:"suggested_description"`
}

// Analyzer 视频评分器，输入预览帧的可访问URL
type Analyzer interface {
	AnalyzeVideo(ctx context.Context, previewURLs []string, simType string) (*VideoAnalysis, error)
}

type visionAnalyzer struct{}

// NewAnalyzer 返回基于全局视觉模型客户端的 Analyzer
func NewAnalyzer() Analyzer {
	return &visionAnalyzer{}
}

func (a *visionAnalyzer) AnalyzeVideo(ctx context.Context, previewURLs []string, simType string) (*VideoAnalysis, error) {
	if len(previewURLs) == 0 {
		return nil, errors.New("视频评分-缺少预览帧")
	}

	if err := VisionSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer VisionSem.Release(1)

	parts := make([]llms.ContentPart, 0, len(previewURLs)+1)
	for _, url := range previewURLs {
		parts = append(parts, llms.ImageURLPart(url))
	}
	parts = append(parts, llms.TextPart("simulation type: "+simType))

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(scorePrompt),
			},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: parts,
		},
	}

	resp, err := llmClient.GenerateContent(ctx, messages,
		llms.WithModel(config.Cfg.LLM.VisionModel),
		llms.WithTemperature(0.2),
		llms.WithJSONMode(),
	)
	if err != nil {
		log.ErrorContext(ctx, "视频评分-AI大模型请求失败", "err", err)
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("视频评分-AI大模型返回数据为空")
	}

	return parseAnalysis(resp.Choices[0].Content)
}

func parseAnalysis(content string) (*VideoAnalysis, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var analysis VideoAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, err
	}

	if analysis.Score < 0 {
		analysis.Score = 0
	}
	if analysis.Score > 10 {
		analysis.Score = 10
	}
	return &analysis, nil
}
