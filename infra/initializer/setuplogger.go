package initializer

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/wbsantos/abertura-contas/pkg/config"
)

func setupLogger(cfg *config.Log) *slog.Logger {
	styles := log.DefaultStyles()
	cores := map[log.Level]lipgloss.AdaptiveColor{
		log.InfoLevel:  {Light: "#04B575", Dark: "#04B575"},
		log.WarnLevel:  {Light: "#EE6FF8", Dark: "#EE6FF8"},
		log.ErrorLevel: {Light: "#FF6B6B", Dark: "#FF6B6B"},
		log.DebugLevel: {Light: "#7E57C2", Dark: "#7E57C2"},
	}
	for nivel, cor := range cores {
		styles.Levels[nivel] = lipgloss.NewStyle().
			SetString(nivel.String()).
			Bold(true).
			Padding(0, 1).
			Foreground(cor)
	}

	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
