package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"Ashfall/modules/kit/errx"
)

// Load 把单个配置文件（yml/json）解析进 out，并监听文件变更热更新。
//
// 约定：配置属于启动期输入，缺失或解析失败直接 panic（fail fast），
// 不做静默纠偏；panic 值统一是 errx.CodeConfigInvalid。
func Load(configPath string, out any) {
	if !fileExist(configPath) {
		panic(errx.ErrConfigInvalid.With("path", configPath).Because(os.ErrNotExist))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.OnConfigChange(func(e fsnotify.Event) {
		// 热更新失败同样视为致命配置错误
		if err := v.Unmarshal(out); err != nil {
			panic(errx.ErrConfigInvalid.With("path", configPath).Because(
				fmt.Errorf("reload unmarshal: %w", err)))
		}
	})
	v.WatchConfig()

	if err := v.ReadInConfig(); err != nil {
		panic(errx.ErrConfigInvalid.With("path", configPath).Because(err))
	}
	if err := v.Unmarshal(out); err != nil {
		panic(errx.ErrConfigInvalid.With("path", configPath).Because(err))
	}
}

// FindUpward 从 startDir 逐级向上查找相对路径 rel，找不到时 panic。
// cmd 下的入口可以在仓库任意子目录里启动。
func FindUpward(startDir, rel string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, rel)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic(errx.ErrConfigInvalid.
				With("rel", rel).
				With("start", startDir).
				Because(os.ErrNotExist))
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
