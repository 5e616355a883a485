package dungeon

import "github.com/sirupsen/logrus"

// defaultLogger is the package-wide logrus instance used when a caller
// does not supply one, matching pkg/pcg's convention of a
// *logrus.Logger field populated from NewRegistry/NewDungeonGenerator
// with a nil-check fallback to logrus.New().
var defaultLogger = logrus.New()

// SetLogger replaces the package default logger. Intended for wiring a
// host application's shared logrus instance, the same role
// pkg/game/logger.go's SetLogger plays for that package's plain log.Logger.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		defaultLogger = l
	}
}

func logger() *logrus.Logger { return defaultLogger }
