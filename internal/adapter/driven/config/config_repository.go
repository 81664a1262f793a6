package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/retail-sales-dashboard-go/internal/domain/repository"
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// EnvPrefix é o prefixo das variáveis de ambiente lidas pelo LoadEnvOverrides.
const EnvPrefix = "RETAIL"

// decoders mapeia a extensão do arquivo para o formato e a função de decodificação.
var decoders = map[string]struct {
	format string
	decode func([]byte, interface{}) error
}{
	".toml": {"TOML", toml.Unmarshal},
	".yaml": {"YAML", yaml.Unmarshal},
	".yml":  {"YAML", yaml.Unmarshal},
	".json": {"JSON", json.Unmarshal},
}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config
	if err := dec.decode(fileData, &config); err != nil {
		return nil, fmt.Errorf("error parsing %s file: %w", dec.format, err)
	}
	return &config, nil
}

// LoadEnvOverrides lê RETAIL_INPUT e RETAIL_DIR. Variáveis ausentes ficam vazias.
func (r *ConfigRepositoryImpl) LoadEnvOverrides() (*types.EnvOverrides, error) {
	var env types.EnvOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("error reading environment overrides: %w", err)
	}
	return &env, nil
}
