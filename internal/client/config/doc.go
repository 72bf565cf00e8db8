// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: ARTSTORE_API_BASE_URL, ARTSTORE_IMAGE_BASE_URL,
//     ARTSTORE_DATA_DIR, ARTSTORE_REQUEST_TIMEOUT (e.g. "10s") and
//     ARTSTORE_DEBUG. A .env file in the working directory is read first.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string    API base URL
//	-img string  image base URL
//	-d string    data directory
//	-t int       request timeout (seconds)
//	-debug       verbose logging
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:5000",
//	  "image_base_url": "http://localhost:5000/images",
//	  "data_dir": ".artstore",
//	  "request_timeout": "10s",
//	  "debug": false
//	}
//
// Policy limits (top-up ceiling, upload size and types) are not
// configurable.
package config
