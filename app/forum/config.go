package forum

import (
	"github.com/forumkit/errgate/core/errhandler"
	"github.com/forumkit/errgate/core/server"
	"github.com/forumkit/errgate/integration/database/pg"
	"github.com/forumkit/errgate/integration/database/redis"
)

// Config is the complete environment configuration of the forum server.
type Config struct {
	Server server.Config
	Errors errhandler.Config
	Redis  redis.Config
	DB     pg.Config

	AppName   string   `env:"APP_NAME" envDefault:"errgate"`
	Env       string   `env:"APP_ENV" envDefault:"development"`
	LogLevel  string   `env:"LOG_LEVEL" envDefault:"info"`
	Blacklist []string `env:"IP_BLACKLIST" envSeparator:","`
}
