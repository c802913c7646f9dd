package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/SamuelRCrider/xplicit-go/utils"
)

// AuditLogLevel defines the verbosity of audit logging
type AuditLogLevel string

const (
	// AuditLogLevelMinimal logs only warnings and failures
	AuditLogLevelMinimal AuditLogLevel = "minimal"

	// AuditLogLevelStandard logs every change with a truncated lyrics excerpt
	AuditLogLevelStandard AuditLogLevel = "standard"

	// AuditLogLevelVerbose logs all details including full lyrics
	AuditLogLevelVerbose AuditLogLevel = "verbose"
)

// AuditLogSeverity defines the severity of audit log events
type AuditLogSeverity string

const (
	SeverityInfo    AuditLogSeverity = "info"
	SeverityWarning AuditLogSeverity = "warning"
	SeverityError   AuditLogSeverity = "error"
)

// Audit event types
const (
	EventRowRewritten  = "row_rewritten"
	EventFileProcessed = "file_processed"
	EventFileFailed    = "file_failed"
	EventRunCompleted  = "run_completed"
)

// excerptLimit caps the lyrics excerpt in standard mode
const excerptLimit = 100

// AuditLog is one line of the JSONL audit trail
type AuditLog struct {
	RunID     string           `json:"run_id"`
	Timestamp string           `json:"timestamp"`
	EventType string           `json:"event_type"`
	Severity  AuditLogSeverity `json:"severity"`
	Source    string           `json:"source,omitempty"`

	// Row level details
	Change  *utils.ChangeRecord `json:"change,omitempty"`
	Excerpt string              `json:"excerpt,omitempty"`

	// Failure details
	Category ErrorCategory `json:"category,omitempty"`
	Error    string        `json:"error,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

// AuditConfig configures an AuditLogger
type AuditConfig struct {
	Path          string
	Level         AuditLogLevel
	RotationSize  int64 // bytes after which the log rotates, 0 disables rotation
	RetentionDays int   // days rotated logs are kept
	EnableConsole bool
}

// AuditLogger writes the JSONL audit trail
type AuditLogger struct {
	mu          sync.Mutex
	config      AuditConfig
	file        *os.File
	writer      io.Writer
	currentSize int64
	initialized bool
}

// NewAuditLogger opens (or creates) the audit log file described by config
func NewAuditLogger(config AuditConfig) (*AuditLogger, error) {
	if config.Path == "" {
		config.Path = "audit.log"
	}
	if config.Level == "" {
		config.Level = AuditLogLevelStandard
	}

	l := &AuditLogger{config: config}
	if err := l.initialize(); err != nil {
		return nil, err
	}
	return l, nil
}

// NewAuditWriter creates an audit logger that writes to w without rotation
func NewAuditWriter(w io.Writer, level AuditLogLevel) *AuditLogger {
	if level == "" {
		level = AuditLogLevelStandard
	}
	return &AuditLogger{
		config:      AuditConfig{Level: level},
		writer:      w,
		initialized: true,
	}
}

// initialize the logger with current settings
func (l *AuditLogger) initialize() error {
	dir := filepath.Dir(l.config.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create audit log directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.config.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to get audit log file info: %w", err)
	}

	l.file = f
	l.currentSize = info.Size()
	if l.config.EnableConsole {
		l.writer = io.MultiWriter(f, os.Stdout)
	} else {
		l.writer = f
	}

	l.initialized = true
	return nil
}

// maybeRotateLog checks if log rotation is needed and performs it if so
func (l *AuditLogger) maybeRotateLog() error {
	if l.file == nil || l.config.RotationSize <= 0 || l.currentSize < l.config.RotationSize {
		return nil
	}

	l.file.Close()

	timestamp := time.Now().Format("20060102-150405.000000000")
	rotatedPath := fmt.Sprintf("%s.%s", l.config.Path, timestamp)
	if err := os.Rename(l.config.Path, rotatedPath); err != nil {
		return fmt.Errorf("failed to rotate audit log: %w", err)
	}

	l.cleanupOldLogs()

	return l.initialize()
}

// cleanupOldLogs removes rotated files older than the retention period
func (l *AuditLogger) cleanupOldLogs() {
	if l.config.RetentionDays <= 0 {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -l.config.RetentionDays)
	files, err := filepath.Glob(l.config.Path + ".*")
	if err != nil {
		return
	}

	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(file)
		}
	}
}

// LogEvent writes one audit event, applying the level filter. A nil logger
// discards events.
func (l *AuditLogger) LogEvent(event AuditLog) error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		if err := l.initialize(); err != nil {
			return err
		}
	}

	if err := l.maybeRotateLog(); err != nil {
		return err
	}

	if event.Severity == "" {
		event.Severity = SeverityInfo
	}
	if event.Timestamp == "" {
		event.Timestamp = time.Now().Format(time.RFC3339Nano)
	}

	switch l.config.Level {
	case AuditLogLevelMinimal:
		if event.Severity == SeverityInfo {
			return nil
		}
		event.Excerpt = ""
	case AuditLogLevelStandard:
		event.Excerpt = Truncate(event.Excerpt, excerptLimit)
	}

	entry, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	n, err := fmt.Fprintln(l.writer, string(entry))
	if err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	l.currentSize += int64(n)

	return nil
}

// LogChange records a rewritten row
func (l *AuditLogger) LogChange(runID string, record utils.ChangeRecord, lyrics string) error {
	return l.LogEvent(AuditLog{
		RunID:     runID,
		EventType: EventRowRewritten,
		Severity:  SeverityInfo,
		Source:    record.Source,
		Change:    &record,
		Excerpt:   lyrics,
	})
}

// LogFailure records a file that could not be processed
func (l *AuditLogger) LogFailure(runID, source string, err error) error {
	if err == nil {
		return nil
	}
	return l.LogEvent(AuditLog{
		RunID:     runID,
		EventType: EventFileFailed,
		Severity:  SeverityError,
		Source:    source,
		Category:  CategoryOf(err),
		Error:     err.Error(),
	})
}

// LogFileProcessed records a successfully processed file
func (l *AuditLogger) LogFileProcessed(runID, source string, rows, changes int) error {
	return l.LogEvent(AuditLog{
		RunID:     runID,
		EventType: EventFileProcessed,
		Severity:  SeverityInfo,
		Source:    source,
		Metadata: map[string]string{
			"rows":    fmt.Sprintf("%d", rows),
			"changes": fmt.Sprintf("%d", changes),
		},
	})
}

// LogRunCompleted records the end of a processing run
func (l *AuditLogger) LogRunCompleted(runID string, metadata map[string]string) error {
	return l.LogEvent(AuditLog{
		RunID:     runID,
		EventType: EventRunCompleted,
		Severity:  SeverityInfo,
		Metadata:  metadata,
	})
}

// Close closes the underlying log file, if any
func (l *AuditLogger) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.initialized = false
	return err
}

// Truncate shortens s to at most limit bytes and marks the cut. The cut backs
// up to the start of a UTF-8 sequence so no character is split.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "... [truncated]"
}
