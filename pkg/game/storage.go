package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// AppName 是 gdata 存储使用的应用名
const AppName = "sparkle"

// OpenStorage 打开 gdata 跨平台存储
//
// 打开失败不是致命错误：记录警告并返回 nil，调用方以降级模式（仅内存）运行。
func OpenStorage(appName string) *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Storage] Warning: Failed to open gdata storage for %q: %v (presets will not persist)", appName, err)
		return nil
	}
	return m
}
