package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Game struct {
		Players int
		Deck    int
		Seed    int64
		// Start 先手座位，-1 为持最小将牌者先手
		Start int
	}
	Bots struct {
		First  string
		Second string
	}
	Stats struct {
		Rounds  int
		Workers int
		Seed    int64
	}
	Redis struct {
		Enabled  bool
		Addr     string
		Password string
		DB       int
		RunTTL   time.Duration `mapstructure:"run_ttl"`
	}
	Log struct {
		Level string
	}
}

var C Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.players", 2)
	v.SetDefault("game.deck", 36)
	v.SetDefault("game.seed", 42)
	v.SetDefault("game.start", -1)
	v.SetDefault("bots.first", "less-card")
	v.SetDefault("bots.second", "random")
	v.SetDefault("stats.rounds", 1000)
	v.SetDefault("stats.workers", 4)
	v.SetDefault("stats.seed", 42)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.run_ttl", 24*time.Hour)
	v.SetDefault("log.level", "warn")
}

// Flags 注册可覆盖配置的命令行参数，名字与配置键一致
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "config/config.yaml", "config file, empty to skip")
	fs.Int("game.players", 2, "number of players")
	fs.Int("game.deck", 36, "deck size: 32, 36 or 52")
	fs.Int64("game.seed", 42, "deal seed")
	fs.Int("game.start", -1, "starting seat, -1 for the lowest trump")
	fs.String("bots.first", "less-card", "first bot")
	fs.String("bots.second", "random", "second bot")
	fs.Int("stats.rounds", 1000, "rounds of four games")
	fs.Int("stats.workers", 4, "games played in parallel")
	fs.Int64("stats.seed", 42, "seed of the game seeds")
	fs.Bool("redis.enabled", false, "keep statistics in redis")
	fs.String("redis.addr", "localhost:6379", "redis address")
	fs.String("log.level", "warn", "debug, info, warn or error")
}

// Load 依次叠加：默认值 < 配置文件 < DURAK_* 环境变量 < 显式传入的命令行参数
func Load(path string, fs *pflag.FlagSet) error {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	v.SetEnvPrefix("DURAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		var err error
		fs.Visit(func(f *pflag.Flag) {
			if err == nil && f.Name != "config" {
				err = v.BindPFlag(f.Name, f)
			}
		})
		if err != nil {
			return err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return err
	}
	C = c
	return nil
}
