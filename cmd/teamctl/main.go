package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/ikeike55momo/schedule/internal/app"
	"github.com/ikeike55momo/schedule/internal/cli"
	"github.com/ikeike55momo/schedule/internal/config"
)

func main() {
	defaults := cli.Defaults{}
	if path, err := cli.DefaultsPath(); err == nil {
		if defaults, err = cli.LoadDefaults(path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	var cfg *config.Config
	loadConfig := func() (config.Config, error) {
		if cfg != nil {
			return *cfg, nil
		}
		c, err := config.Load()
		if err != nil {
			return config.Config{}, err
		}
		cfg = &c
		return c, nil
	}

	deps := &cli.Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Defaults: defaults,
		Open: func() (cli.Backend, error) {
			c, err := loadConfig()
			if err != nil {
				return nil, err
			}
			return cli.OpenBackend(c)
		},
		Migrate: func() error {
			c, err := loadConfig()
			if err != nil {
				return err
			}
			return app.Migrate(c.PG.DSN)
		},
	}
	if err := cli.Execute(deps); err != nil {
		os.Exit(1)
	}
}
