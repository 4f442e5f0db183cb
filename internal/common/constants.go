package common

// Environment variable keys
const (
	EnvConfigFile   = "CONFIG_FILE"
	EnvListenAddr   = "LISTEN_ADDR"
	EnvScalerPath   = "SCALER_PATH"
	EnvModelPath    = "MODEL_PATH"
	EnvDataPath     = "DATA_PATH"
	EnvHistoryLimit = "HISTORY_LIMIT"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFormat    = "LOG_FORMAT"
	EnvReadTimeout  = "READ_TIMEOUT"
	EnvWriteTimeout = "WRITE_TIMEOUT"
	EnvEnableFeed   = "ENABLE_FEED"
)

// Configuration defaults
const (
	DefaultListenAddr   = ":8501"
	DefaultScalerPath   = "scaler.json"
	DefaultModelPath    = "random_forest_model.json"
	DefaultHistoryLimit = 50
	DefaultLogLevel     = "info"
	DefaultLogFormat    = LogFormatConsole
	DefaultEnableFeed   = true
)

// Log output formats
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Common error messages
const (
	ErrMsgScalerPathRequired = "scaler path is required"
	ErrMsgModelPathRequired  = "model path is required"
	ErrMsgListenAddrRequired = "listen address is required"
)

// Validation constants
const (
	MinHistoryLimit = 1
	MaxHistoryLimit = 1000
)
