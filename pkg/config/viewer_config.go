package config

import (
	"fmt"
	"image/color"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/sparkle/internal/particle"
	"github.com/gonewx/sparkle/pkg/embedded"
)

// ViewerConfigPath is the embedded viewer configuration.
const ViewerConfigPath = "data/viewer.yaml"

// ViewerConfig 查看器窗口与终端配置
type ViewerConfig struct {
	Width       int            `yaml:"width"`       // 窗口宽度（像素）
	Height      int            `yaml:"height"`      // 窗口高度（像素）
	StartPreset string         `yaml:"startPreset"` // 启动时选中的预设
	Background  string         `yaml:"background"`  // 背景色 "#rrggbb"
	MaxDelta    float64        `yaml:"maxDelta"`    // 每帧 delta 上限（秒），0 = 不限制
	Terminal    TerminalConfig `yaml:"terminal"`
}

// TerminalConfig 终端渲染配置
type TerminalConfig struct {
	CellWidth  int `yaml:"cellWidth"`  // 每个字符单元对应的像素宽度
	CellHeight int `yaml:"cellHeight"` // 每个字符单元对应的像素高度
}

// DefaultViewerConfig 返回内置默认值
func DefaultViewerConfig() ViewerConfig {
	return ViewerConfig{
		Width:       800,
		Height:      600,
		StartPreset: "sparkle",
		Background:  "#000000",
		Terminal:    TerminalConfig{CellWidth: 8, CellHeight: 16},
	}
}

// LoadViewerConfig 从嵌入数据加载查看器配置，缺省字段使用默认值
func LoadViewerConfig(path string) (*ViewerConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read viewer config: %w", err)
	}
	return ParseViewerConfig(data)
}

// ParseViewerConfig 解析查看器配置 YAML
func ParseViewerConfig(data []byte) (*ViewerConfig, error) {
	cfg := DefaultViewerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse viewer config YAML: %w", err)
	}

	if err := validateViewerConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid viewer config: %w", err)
	}
	return &cfg, nil
}

// validateViewerConfig 验证配置的有效性
func validateViewerConfig(cfg *ViewerConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.MaxDelta < 0 {
		return fmt.Errorf("maxDelta cannot be negative, got %v", cfg.MaxDelta)
	}
	if cfg.Terminal.CellWidth <= 0 || cfg.Terminal.CellHeight <= 0 {
		return fmt.Errorf("terminal cell size must be positive, got %dx%d", cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)
	}
	if _, err := particle.ParseColor(cfg.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	return nil
}

// BackgroundColor 返回解析后的背景色
func (c *ViewerConfig) BackgroundColor() color.RGBA {
	bg, err := particle.ParseColor(c.Background)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return bg
}
