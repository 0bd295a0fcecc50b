package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aleister1102/pagewatch/internal/common"
	"gopkg.in/yaml.v3"
)

const maxConfigFileSize = 10 * 1024 * 1024

// GetConfigPath determines the configuration file path.
// Priority:
// 1. --config command-line flag
// 2. PAGEWATCH_CONFIG_PATH environment variable
// 3. config.yaml / config.yml / config.json in the current working directory
// 4. the same names in the executable's directory
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		return configFilePathFlag
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if fileExists(envPath) {
			return envPath
		}
	}

	var locations []string
	cwd, errCwd := os.Getwd()
	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if exePath, errExe := os.Executable(); errExe == nil {
		exeDir := filepath.Dir(exePath)
		if errCwd != nil || exeDir != cwd {
			locations = append(locations, exeDir)
		}
	}

	defaultFiles := []string{"config.yaml", "config.yml", "config.json"}
	for _, loc := range locations {
		for _, file := range defaultFiles {
			path := filepath.Join(loc, file)
			if fileExists(path) {
				return path
			}
		}
	}
	return ""
}

// LoadGlobalConfig loads the configuration from providedPath or the default
// locations. YAML is used for .yaml/.yml files, JSON otherwise. The result is
// not validated; call ValidateConfig before use.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return nil, common.NewConfigurationError("", "", "no configuration file found")
	}
	if !fileExists(filePath) {
		return nil, common.NewConfigurationError("", "", "config file does not exist: "+filePath)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to stat config file")
	}
	if info.Size() > maxConfigFileSize {
		return nil, common.NewConfigurationError("", "", "config file is too large: "+filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	cfg := NewDefaultGlobalConfig()
	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}
	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	if isYAMLFile(filepath.Ext(filePath)) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
		}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
