// Package embedded 提供嵌入资源的统一访问接口
//
// 默认数据（预设、查看器配置）嵌入在本包的 data/ 目录中，
// 调用 Init() 可替换为其他文件系统（例如 --data 指定的目录）。
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed data
var defaultFS embed.FS

var (
	dataFS      fs.FS = defaultFS
	initialized bool
)

// Init 用 data 替换默认的嵌入文件系统
// data 的根目录必须包含 data/ 子目录
func Init(data fs.FS) {
	dataFS = data
	initialized = true
}

// Reset 恢复为包内嵌入的默认数据
func Reset() {
	dataFS = defaultFS
	initialized = false
}

// IsInitialized 返回是否调用过 Init 替换了默认数据
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径并校验 data/ 前缀
func normalize(path string) (string, error) {
	// embed.FS 使用正斜杠
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if path != "data" && !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open 打开数据文件
func Open(path string) (fs.File, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(path)
}

// ReadFile 读取数据文件内容
func ReadFile(path string) ([]byte, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配数据文件
func Glob(pattern string) ([]string, error) {
	pattern, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, pattern)
}

// ReadDir 读取目录内容
func ReadDir(path string) ([]fs.DirEntry, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(dataFS, path)
}

// Stat 获取文件信息
func Stat(path string) (fs.FileInfo, error) {
	file, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return file.Stat()
}
