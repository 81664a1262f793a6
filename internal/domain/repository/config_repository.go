package repository

import (
	"github.com/diillson/retail-sales-dashboard-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration files.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	LoadEnvOverrides() (*types.EnvOverrides, error)
}
