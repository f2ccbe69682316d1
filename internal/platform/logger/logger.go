// Package logger es la capa de logging del servicio: key/value con niveles,
// salida text o json, sin dependencias externas. Los servicios reciben la
// interfaz Logger; las escrituras best-effort (generador de datos por
// defecto, cascadas de vacunas) reportan sus fallas por acá.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var levelNames = map[Level]string{
	Debug: "debug",
	Info:  "info",
	Warn:  "warn",
	Error: "error",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return "info"
}

// ParseLevel acepta los nombres usuales; cualquier otra cosa cae en Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string
	Out    io.Writer // default os.Stdout
}

// New crea el logger estándar del servicio.
func New(opts Options) Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	format := opts.Format
	if format == "" {
		format = FormatText
	}

	base := map[string]any{}
	if app := strings.TrimSpace(opts.App); app != "" {
		base["app"] = app
	}

	return &stdLogger{
		out:    out,
		mu:     &sync.Mutex{},
		level:  opts.Level,
		format: format,
		base:   base,
	}
}

// NewFromEnv lee LOG_LEVEL (debug|info|warn|error), LOG_FORMAT (text|json)
// y APP_NAME.
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

type stdLogger struct {
	out    io.Writer
	mu     *sync.Mutex // compartido entre derivados de With
	level  Level
	format Format
	base   map[string]any
}

func (l *stdLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	child := *l
	child.base = mergeFields(l.base, fields)
	return &child
}

func (l *stdLogger) Debug(msg string, fields map[string]any) { l.write(Debug, msg, fields) }
func (l *stdLogger) Info(msg string, fields map[string]any)  { l.write(Info, msg, fields) }
func (l *stdLogger) Warn(msg string, fields map[string]any)  { l.write(Warn, msg, fields) }
func (l *stdLogger) Error(msg string, fields map[string]any) { l.write(Error, msg, fields) }

func (l *stdLogger) write(lvl Level, msg string, fields map[string]any) {
	if lvl < l.level {
		return
	}

	entry := mergeFields(l.base, fields)
	entry["ts"] = time.Now().Format(time.RFC3339Nano)
	entry["level"] = lvl.String()
	entry["msg"] = msg

	var line string
	if l.format == FormatJSON {
		b, _ := json.Marshal(entry)
		line = string(b)
	} else {
		line = renderText(entry)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, line)
}

func mergeFields(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		if strings.TrimSpace(k) == "" {
			continue
		}
		out[k] = v
	}
	return out
}

func renderText(entry map[string]any) string {
	// keys ordenadas para salida estable
	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%v", k, entry[k])
	}
	return sb.String()
}

// Nop descarta todo. Para tests y wiring opcional.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) With(map[string]any) Logger   { return nopLogger{} }
func (nopLogger) Debug(string, map[string]any) {}
func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
