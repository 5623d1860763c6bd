// Package config loads pagewalk settings with viper.
//
// Settings come from a config file (YAML, JSON or TOML) and are overridden by
// environment variables prefixed with PAGEWALK_, dots replaced by
// underscores:
//
//	PAGEWALK_API_HOST=mastodon.social
//	PAGEWALK_API_TOKEN=...
//	PAGEWALK_PAGING_MAX_PAGES=10
//
// MASTODON_INSTANCE and MASTODON_TOKEN are accepted as aliases for the API
// host and token.
//
// # Example
//
//	app_name: pagewalk
//	api:
//	  host: mastodon.social
//	  timeout: 30s
//	paging:
//	  mode: min_id
//	  max_pages: 4
//	  limit: 40
//	retry:
//	  max_retries: 3
//	breaker:
//	  timeout: 30s
//	rate_limit:
//	  rps: 5
//	logger:
//	  level: 4
//	  format: json
//	  output: stderr
package config
