// Package logger configura el logging estructurado de la aplicación sobre
// zerolog: consola legible en development, JSON una-línea-por-evento en el
// resto de entornos.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones de arranque del logger.
type Config struct {
	Env   string // "development" activa la salida de consola
	Level string // nivel mínimo (trace..error); vacío o inválido = info
}

// Logger expone la API de zerolog directamente (Info(), Error(), With()...).
type Logger struct {
	zerolog.Logger
}

// New construye el logger de la aplicación y lo fija también como logger
// global de zerolog para las librerías que escriben por esa vía.
func New(cfg Config) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	log.Logger = zl
	return &Logger{zl}
}
