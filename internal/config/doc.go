// Package config loads the deadline tracker's YAML configuration.
//
// Every field has a default, so the file is optional. Example:
//
//	data_dir: ~/.local/share/deadline-tracker
//	log_level: info
//	dedup_window: 24h
//	urgency:
//	  urgent_days: 3
//	  warning_days: 7
//	fetch:
//	  timeout: 30s
//	  max_body_text: 5000
package config
