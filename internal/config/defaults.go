package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"schemas_dir":         "",
		"output_format":       "text",
		"workers":             4,
		"station_load_policy": "continue",
		"state_dir":           "~/.sagalint/state",
		"history_enabled":     true,
		"history_max_entries": 500,
		"color":               "auto",
	}
}
