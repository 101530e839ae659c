package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/sparkle/internal/particle"
	"github.com/gonewx/sparkle/pkg/config"
)

// 存储路径常量
const (
	presetsObject   = "presets"
	presetsProperty = "user"
)

// PresetManager 预设管理器
// 负责用户预设的加载、保存，并与内置预设合并为一个预设库
type PresetManager struct {
	gdataManager *gdata.Manager        // gdata 跨平台存储管理器，可为 nil（降级模式）
	builtin      []particle.Preset     // 内置预设
	user         []particle.Preset     // 用户保存的预设
	library      *config.PresetLibrary // 内置 + 用户预设，用户预设覆盖同名内置预设
}

// NewPresetManager 创建新的预设管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，用户预设仅保存在内存）
//   - builtin: 内置预设
//
// 加载用户预设失败不是致命错误，只记录警告并使用内置预设。
func NewPresetManager(gdataManager *gdata.Manager, builtin []particle.Preset) *PresetManager {
	pm := &PresetManager{
		gdataManager: gdataManager,
		builtin:      builtin,
	}
	pm.rebuild()

	if err := pm.Load(); err != nil {
		log.Printf("[PresetManager] Warning: Failed to load user presets: %v (using built-in presets)", err)
	}

	return pm
}

// Load 从 gdata 加载用户预设
//
// 如果 gdataManager 为 nil 或文件不存在，用户预设为空
func (pm *PresetManager) Load() error {
	pm.user = nil
	defer pm.rebuild()

	// 降级模式：无法持久化
	if pm.gdataManager == nil {
		return nil
	}

	if !pm.gdataManager.ObjectPropExists(presetsObject, presetsProperty) {
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(presetsObject, presetsProperty)
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	file, err := particle.ParsePresetYAML(data)
	if errors.Is(err, particle.ErrNoPresets) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to unmarshal presets: %w", err)
	}

	// 跳过无法转换的预设，避免一个坏预设导致全部丢失
	for _, p := range file.Presets {
		if _, err := config.EmitterConfigFromPreset(p, 1, 1); err != nil {
			log.Printf("[PresetManager] Warning: Skipping invalid preset %q: %v", p.Name, err)
			continue
		}
		pm.user = append(pm.user, p)
	}

	log.Printf("[PresetManager] Loaded %d user preset(s)", len(pm.user))
	return nil
}

// Save 保存用户预设到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (pm *PresetManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := particle.MarshalPresetYAML(pm.user)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}

	if err := pm.gdataManager.SaveObjectProp(presetsObject, presetsProperty, data); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}

	log.Printf("[PresetManager] Saved %d user preset(s)", len(pm.user))
	return nil
}

// SavePreset 添加或替换一个用户预设并立即持久化
func (pm *PresetManager) SavePreset(p particle.Preset) error {
	if p.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if _, err := config.EmitterConfigFromPreset(p, 1, 1); err != nil {
		return err
	}

	replaced := false
	for i := range pm.user {
		if pm.user[i].Name == p.Name {
			pm.user[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		pm.user = append(pm.user, p)
	}
	pm.library.Put(p)

	return pm.Save()
}

// DeletePreset 删除一个用户预设并立即持久化
// 同名内置预设会重新生效
func (pm *PresetManager) DeletePreset(name string) error {
	for i := range pm.user {
		if pm.user[i].Name == name {
			pm.user = append(pm.user[:i], pm.user[i+1:]...)
			pm.rebuild()
			return pm.Save()
		}
	}
	return fmt.Errorf("user preset %q not found", name)
}

// UserPresets 返回用户预设的副本
func (pm *PresetManager) UserPresets() []particle.Preset {
	out := make([]particle.Preset, len(pm.user))
	copy(out, pm.user)
	return out
}

// Library 返回合并后的预设库
func (pm *PresetManager) Library() *config.PresetLibrary {
	return pm.library
}

// rebuild 重新合并内置预设与用户预设
func (pm *PresetManager) rebuild() {
	pm.library = config.NewPresetLibrary(pm.builtin)
	for _, p := range pm.user {
		pm.library.Put(p)
	}
}
