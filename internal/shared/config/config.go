package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Loader 持有一个 viper 实例；热更新时把新配置重新解码到 out，并通知订阅方。
type Loader struct {
	v  *viper.Viper
	mu sync.Mutex

	onChange []func()
}

// Load 读取 cfgName 指向的 yaml 并解码到 out（out 必须是指针）。
// watch=true 时监听文件变更并重新解码。
func Load(cfgName string, out any, watch bool) (*Loader, error) {
	path, err := Resolve(cfgName)
	if err != nil {
		return nil, err
	}
	if !fileExist(path) {
		return nil, fmt.Errorf("config file not exist, configPath=%v", path)
	}

	l := &Loader{v: viper.New()}
	l.v.SetConfigFile(path)
	if err = l.v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err = l.v.Unmarshal(out); err != nil {
		return nil, fmt.Errorf("viper unmarshal config: %w", err)
	}

	if watch {
		l.v.OnConfigChange(func(e fsnotify.Event) {
			log.Println("配置文件变更", e.Name)
			l.mu.Lock()
			defer l.mu.Unlock()
			if err := l.v.Unmarshal(out); err != nil {
				// 热更新解码失败时保留旧值，不让进程崩掉
				log.Printf("viper unmarshal changed config failed: %v", err)
				return
			}
			for _, fn := range l.onChange {
				fn()
			}
		})
		l.v.WatchConfig()
	}
	return l, nil
}

// OnChange 注册热更新回调。回调在 fsnotify 的 goroutine 上执行，调用方自行保证并发安全。
func (l *Loader) OnChange(fn func()) {
	if l == nil || fn == nil {
		return
	}
	l.mu.Lock()
	l.onChange = append(l.onChange, fn)
	l.mu.Unlock()
}

func (l *Loader) ConfigFile() string {
	if l == nil {
		return ""
	}
	return l.v.ConfigFileUsed()
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
