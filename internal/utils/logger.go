package utils

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Log is the process-wide structured logger. It is usable before Init and
// defaults to warnings only, which keeps tests and library callers quiet.
var Log = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.DateTime,
	Level:           log.WarnLevel,
})

// Init rebuilds Log with the given level and the project level badges.
func Init(level string) error {
	return InitWriter(os.Stderr, level)
}

func InitWriter(w io.Writer, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           lvl,
	})
	l.SetStyles(styles())
	Log = l
	return nil
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Levels[log.DebugLevel] = badge("DEBUG", "#4682B4FF", "#FFFFFFFF")
	s.Levels[log.InfoLevel] = badge("INFO", "#90EE9080", "#006400FF")
	s.Levels[log.WarnLevel] = badge("WARN", "#FFD700FF", "#000000FF")
	s.Levels[log.ErrorLevel] = badge("ERROR", "#FF0000FF", "#00FFFF00")
	s.Levels[log.FatalLevel] = badge("FATAL", "#000000FF", "#00FFFF00")
	return s
}

func badge(text, bg, fg string) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(text).
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Bold(true)
}
