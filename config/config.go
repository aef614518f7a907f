package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/SaladDais/Impasse/ai"
)

type Config struct {
	DefaultPostProcess uint32 `yaml:"defaultPostProcess"`
	ListenAddr         string `yaml:"listenAddr"`
	SceneUploadLimitMB int64  `yaml:"sceneUploadLimitMb"`
}

var cfg = Config{
	DefaultPostProcess: uint32(ai.ProcessTriangulate),
	ListenAddr:         ":8067",
	SceneUploadLimitMB: 64,
}

// LoadFile overlays settings from a yaml file onto the defaults.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return errors.Wrapf(err, "parse config %q", path)
	}
	return nil
}

func GetDefaultPostProcess() ai.PostProcess {
	return ai.PostProcess(cfg.DefaultPostProcess)
}

func SetDefaultPostProcess(flags ai.PostProcess) {
	cfg.DefaultPostProcess = uint32(flags)
}

func GetListenAddr() string { return cfg.ListenAddr }

func SetListenAddr(addr string) { cfg.ListenAddr = addr }

func GetSceneUploadLimit() int64 { return cfg.SceneUploadLimitMB * 1024 * 1024 }
