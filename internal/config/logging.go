package config

import (
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger crea el logger del proceso: texto a stderr siempre, y si hay
// LogFile, fanout JSON al archivo (parseable por máquina). Devuelve también
// la función de cleanup para cerrar el archivo.
func SetupLogger(cfg Config) (*slog.Logger, func() error) {
	level := cfg.Level()

	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	base := func(h slog.Handler) *slog.Logger {
		return slog.New(h).With("app", cfg.App)
	}

	if cfg.LogFile == "" {
		return base(stderrHandler), func() error { return nil }
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		// si el archivo falla, seguimos solo con stderr
		log := base(stderrHandler)
		log.Error("failed to open log file, using stderr only", "error", err, "file", cfg.LogFile)
		return log, func() error { return nil }
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: level,
	})

	return base(slogmulti.Fanout(stderrHandler, fileHandler)), file.Close
}
