package history

import "codeberg.org/ashpool/sysbar/internal/errors"

const (
	defaultDirPerm = 0o755
	defaultDBPath  = "/var/lib/sysbar/history.db"
)

type Config struct {
	DBPath string
}

func DefaultConfig() Config {
	return Config{
		DBPath: defaultDBPath,
	}
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New().New(ErrInvalidDBPath)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
