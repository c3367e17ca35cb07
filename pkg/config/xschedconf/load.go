package xschedconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 配置格式
type Format string

const (
	// FormatYAML YAML 格式
	FormatYAML Format = "yaml"
	// FormatJSON JSON 格式
	FormatJSON Format = "json"
)

// FormatOf 根据文件扩展名识别配置格式。
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load 从文件加载配置并校验。
func Load(path string) (Config, error) {
	format, data, err := readFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data, format)
}

// Parse 从字节数据解析配置并校验。文件中缺失的字段保留默认值。
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	if err := unmarshal(data, format, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readFile 读取文件并识别格式
func readFile(path string) (Format, []byte, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil, ErrEmptyPath
	}
	format, err := FormatOf(path)
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return format, data, nil
}

// unmarshal 用 koanf 解析 data 并填充 target
func unmarshal(data []byte, format Format, target any) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	k := koanf.New(".")
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
	}
	if err := k.UnmarshalWithConf("", target, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return nil
}
