package main

import (
	"fmt"
	"os"

	"github.com/gonewx/sparkle/internal/particle"
	"github.com/gonewx/sparkle/pkg/config"
)

// 用法: go run ./tools [presets.yaml]
func main() {
	path := "pkg/embedded/data/presets.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ 读取文件失败: %v\n", err)
		os.Exit(1)
	}

	file, err := particle.ParsePresetYAML(data)
	if err != nil {
		fmt.Printf("❌ YAML 解析失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ YAML 格式正确\n")
	fmt.Printf("✅ 预设数量: %d\n", len(file.Presets))

	invalid := 0
	for _, p := range file.Presets {
		cfg, err := config.EmitterConfigFromPreset(p, 800, 600)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			invalid++
			continue
		}
		if cfg.ParticlesPerSecond <= 0 || cfg.MaxParticles <= 0 {
			fmt.Printf("⚠️  预设 %s 不会发射粒子\n", p.Name)
		}
		if cfg.FireDuration == 0 {
			fmt.Printf("   %s: 持续发射\n", p.Name)
		} else {
			fmt.Printf("   %s: 发射 %.2fs 后结束\n", p.Name, cfg.FireDuration)
		}
	}

	if invalid == 0 {
		fmt.Printf("✅ 所有预设字段都有效\n")
	} else {
		fmt.Printf("❌ 有 %d 个预设无效\n", invalid)
		os.Exit(1)
	}
}
