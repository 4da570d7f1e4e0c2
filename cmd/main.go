package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"DurakEngine/config"
	"DurakEngine/internal/bot"
	"DurakEngine/internal/game/dealer"
	"DurakEngine/internal/game/engine"
	"DurakEngine/internal/game/manager"
	"DurakEngine/internal/render"
	"DurakEngine/internal/stats"
	"DurakEngine/internal/storage"
	"DurakEngine/internal/utils"
)

const usage = `usage: durak <command> [flags]

commands:
  play    play one game and draw every stage
  stats   play many games between two bots and print the statistic
  bots    list the available bots
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd := os.Args[1]

	var run func(context.Context) error
	switch cmd {
	case "play":
		run = play
	case "stats":
		run = runStats
	case "bots":
		for _, name := range bot.Names() {
			fmt.Println(name)
		}
		return
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	//-------------------------------------------------------
	// 1. 配置与日志
	//-------------------------------------------------------
	fs := pflag.NewFlagSet(cmd, pflag.ExitOnError)
	config.Flags(fs)
	_ = fs.Parse(os.Args[2:])
	path, _ := fs.GetString("config")
	if err := config.Load(path, fs); err != nil {
		utils.Log.Fatal("config load failed", "err", err)
	}
	if err := utils.Init(config.C.Log.Level); err != nil {
		utils.Log.Fatal("logger init failed", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx); err != nil {
		utils.Log.Error(cmd+" failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func play(context.Context) error {
	deckType, err := dealer.DeckTypeOf(config.C.Game.Deck)
	if err != nil {
		return err
	}
	g, err := engine.NewGame(config.C.Game.Players, deckType)
	if err != nil {
		return err
	}
	for seat := range config.C.Game.Players {
		name := config.C.Bots.Second
		if seat == 0 {
			name = config.C.Bots.First
		}
		d, err := bot.New(name, config.C.Game.Seed+int64(seat))
		if err != nil {
			return err
		}
		if err := g.SetDecision(seat, d); err != nil {
			return err
		}
	}

	audit := engine.LogListener{Logger: utils.Log}
	g.AddStageListener(audit)
	g.AddStepListener(audit)
	g.AddStageListener(render.StageRenderer{W: os.Stdout, Src: g})

	if err := g.Init(config.C.Game.Start, config.C.Game.Seed); err != nil {
		return err
	}
	loser, err := g.Run()
	if err != nil {
		return err
	}
	fmt.Println(render.Render(g.RenderState()))
	if loser == engine.Draw {
		fmt.Println("draw")
	} else {
		fmt.Printf("seat %d is the durak\n", loser)
	}
	return nil
}

func runStats(ctx context.Context) error {
	deckType, err := dealer.DeckTypeOf(config.C.Game.Deck)
	if err != nil {
		return err
	}

	//-------------------------------------------------------
	// 2. 统计存储：Redis 或内存
	//-------------------------------------------------------
	repo := stats.NewMemoryRepo()
	if config.C.Redis.Enabled {
		if err := storage.InitRedis(ctx, config.C.Redis.Addr, config.C.Redis.Password, config.C.Redis.DB); err != nil {
			return err
		}
		defer storage.CloseRedis()
		repo = stats.NewRedisRepo(storage.Rdb, config.C.Redis.RunTTL)
	}

	mgr := manager.NewManager(repo, config.C.Stats.Workers, deckType)
	rep, err := mgr.Run(ctx, config.C.Bots.First, config.C.Bots.Second, config.C.Stats.Rounds, config.C.Stats.Seed)
	if err != nil {
		return err
	}
	fmt.Printf("run %s\n%s", rep.RunID, rep.Run)
	if rep.Total.Games() != rep.Run.Games() {
		fmt.Printf("\nall runs\n%s", rep.Total)
	}
	return nil
}
