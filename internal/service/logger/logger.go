package logger

import (
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "capsightai-backend"

var (
	AccessLogger *zap.Logger
	DBLogger     *zap.Logger
)

// InitLoggers creates access.log and db.log inside dir.
func InitLoggers(dir string) error {
	var err error
	AccessLogger, err = newFileLogger(filepath.Join(dir, "access.log"))
	if err != nil {
		return err
	}

	DBLogger, err = newFileLogger(filepath.Join(dir, "db.log"))
	if err != nil {
		return err
	}

	return nil
}

func newFileLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{
		path,
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build(zap.Fields(zap.String("service", serviceName)))
}

func SyncLoggers() error {
	err := AccessLogger.Sync()
	if err != nil {
		return err
	}
	err = DBLogger.Sync()
	if err != nil {
		return err
	}
	return nil
}
