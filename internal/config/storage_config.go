package config

// StorageConfig defines configuration for validation run history storage.
type StorageConfig struct {
	HistoryDBPath string `json:"history_db_path,omitempty" yaml:"history_db_path,omitempty"`
	Enabled       bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		HistoryDBPath: DefaultHistoryDBPath,
		Enabled:       true,
	}
}
