// Package logging provides structured logging channels for PulseWire operations
// with multi-tenant support and performance correlation capabilities.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Channel represents a logical logging channel for different system components
type Channel string

const (
	// System channels
	ChannelSystem   Channel = "system"   // General system operations
	ChannelStartup  Channel = "startup"  // Application startup and initialization
	ChannelShutdown Channel = "shutdown" // Application shutdown and cleanup

	// Business logic channels
	ChannelAuth            Channel = "auth"            // Authentication and authorization
	ChannelContent         Channel = "content"         // Upstream content fetching and normalization
	ChannelRanking         Channel = "ranking"         // Scoring, trend classification, prioritization
	ChannelProfile         Channel = "profile"         // Preference profile updates and classification
	ChannelPersonalization Channel = "personalization" // Personalized content resolution
	ChannelCache           Channel = "cache"           // Cache operations and management

	// Infrastructure channels
	ChannelDatabase Channel = "database" // Database operations and queries
	ChannelTenant   Channel = "tenant"   // Multi-tenant operations
	ChannelSocket   Channel = "socket"   // Websocket broadcast and real-time

	// Performance and monitoring channels
	ChannelPerf Channel = "performance" // Performance monitoring and metrics

	// Development and debugging channels
	ChannelDebug Channel = "debug" // Debug information
)

// ChanneledLogger provides structured logging with multiple channels
type ChanneledLogger struct {
	channels map[Channel]*slog.Logger
	config   *LoggerConfig
	baseDir  string
	configMu sync.RWMutex
}

// LoggerConfig contains configuration options for the channeled logger
type LoggerConfig struct {
	// Output configuration
	OutputToFile    bool   `json:"outputToFile"`    // Whether to write logs to files
	OutputToConsole bool   `json:"outputToConsole"` // Whether to write logs to console
	LogDirectory    string `json:"logDirectory"`    // Directory for log files

	// Formatting configuration
	JSONFormat    bool `json:"jsonFormat"`    // Use JSON format for structured logging
	IncludeSource bool `json:"includeSource"` // Include source file and line in logs

	// Level configuration per channel
	DefaultLevel  slog.Level             `json:"defaultLevel"`  // Default log level
	ChannelLevels map[Channel]slog.Level `json:"channelLevels"` // Per-channel log levels
}

// DefaultLoggerConfig returns a sensible default configuration
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		OutputToFile:    true,
		OutputToConsole: true,
		LogDirectory:    "logs",
		JSONFormat:      true,
		IncludeSource:   false,
		DefaultLevel:    slog.LevelInfo,
		ChannelLevels:   make(map[Channel]slog.Level),
	}
}

var allChannels = []Channel{
	ChannelSystem, ChannelStartup, ChannelShutdown,
	ChannelAuth, ChannelContent, ChannelRanking, ChannelProfile,
	ChannelPersonalization, ChannelCache,
	ChannelDatabase, ChannelTenant, ChannelSocket,
	ChannelPerf, ChannelDebug,
}

// NewChanneledLogger creates a new channeled logger with the given configuration
func NewChanneledLogger(config *LoggerConfig) (*ChanneledLogger, error) {
	if config == nil {
		config = DefaultLoggerConfig()
	}

	logger := &ChanneledLogger{
		channels: make(map[Channel]*slog.Logger),
		config:   config,
		baseDir:  config.LogDirectory,
	}

	if config.OutputToFile {
		if err := os.MkdirAll(config.LogDirectory, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	for _, channel := range allChannels {
		channelLogger, err := logger.createChannelLogger(channel)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger for channel %s: %w", channel, err)
		}
		logger.channels[channel] = channelLogger
	}

	return logger, nil
}

// createChannelLogger creates a slog.Logger for a specific channel
func (cl *ChanneledLogger) createChannelLogger(channel Channel) (*slog.Logger, error) {
	cl.configMu.RLock()
	defer cl.configMu.RUnlock()

	// Respect DefaultLevel unless explicitly overridden for this channel
	level := cl.config.DefaultLevel
	if channelLevel, exists := cl.config.ChannelLevels[channel]; exists {
		level = channelLevel
	}

	var writers []io.Writer

	if cl.config.OutputToConsole {
		writers = append(writers, os.Stdout)
	}

	if cl.config.OutputToFile {
		filename := fmt.Sprintf("%s.log", string(channel))
		path := filepath.Join(cl.config.LogDirectory, filename)

		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}

		writers = append(writers, file)
	}

	var writer io.Writer
	if len(writers) == 1 {
		writer = writers[0]
	} else if len(writers) > 1 {
		writer = io.MultiWriter(writers...)
	} else {
		writer = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cl.config.IncludeSource,
	}

	var handler slog.Handler
	if cl.config.JSONFormat {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	logger := slog.New(handler).With(slog.String("channel", string(channel)))

	return logger, nil
}

func (cl *ChanneledLogger) System() *slog.Logger          { return cl.channels[ChannelSystem] }
func (cl *ChanneledLogger) Startup() *slog.Logger         { return cl.channels[ChannelStartup] }
func (cl *ChanneledLogger) Shutdown() *slog.Logger        { return cl.channels[ChannelShutdown] }
func (cl *ChanneledLogger) Auth() *slog.Logger            { return cl.channels[ChannelAuth] }
func (cl *ChanneledLogger) Content() *slog.Logger         { return cl.channels[ChannelContent] }
func (cl *ChanneledLogger) Ranking() *slog.Logger         { return cl.channels[ChannelRanking] }
func (cl *ChanneledLogger) Profile() *slog.Logger         { return cl.channels[ChannelProfile] }
func (cl *ChanneledLogger) Personalization() *slog.Logger { return cl.channels[ChannelPersonalization] }
func (cl *ChanneledLogger) Cache() *slog.Logger           { return cl.channels[ChannelCache] }
func (cl *ChanneledLogger) Database() *slog.Logger        { return cl.channels[ChannelDatabase] }
func (cl *ChanneledLogger) Tenant() *slog.Logger          { return cl.channels[ChannelTenant] }
func (cl *ChanneledLogger) Socket() *slog.Logger          { return cl.channels[ChannelSocket] }
func (cl *ChanneledLogger) Perf() *slog.Logger            { return cl.channels[ChannelPerf] }
func (cl *ChanneledLogger) Debug() *slog.Logger           { return cl.channels[ChannelDebug] }

// GetChannel returns a logger for a specific channel
func (cl *ChanneledLogger) GetChannel(channel Channel) *slog.Logger {
	if logger, exists := cl.channels[channel]; exists {
		return logger
	}
	return cl.channels[ChannelSystem]
}

// WithTenant returns a logger with tenant context
func (cl *ChanneledLogger) WithTenant(channel Channel, tenantID string) *slog.Logger {
	return cl.GetChannel(channel).With(slog.String("tenantId", tenantID))
}

// SetChannelLevel overrides the log level for one channel at runtime
func (cl *ChanneledLogger) SetChannelLevel(channel Channel, level slog.Level) error {
	cl.configMu.Lock()
	cl.config.ChannelLevels[channel] = level
	cl.configMu.Unlock()

	channelLogger, err := cl.createChannelLogger(channel)
	if err != nil {
		return err
	}

	cl.configMu.Lock()
	cl.channels[channel] = channelLogger
	cl.configMu.Unlock()
	return nil
}

// ChannelLevels reports the effective level for every channel
func (cl *ChanneledLogger) ChannelLevels() map[string]string {
	cl.configMu.RLock()
	defer cl.configMu.RUnlock()

	levels := make(map[string]string, len(allChannels))
	for _, channel := range allChannels {
		level := cl.config.DefaultLevel
		if override, exists := cl.config.ChannelLevels[channel]; exists {
			level = override
		}
		levels[string(channel)] = strings.ToUpper(level.String())
	}
	return levels
}

// ParseLevel converts a level name into a slog.Level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Timestamp formats a time the way dashboard consumers expect
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
