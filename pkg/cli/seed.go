package cli

import (
	"context"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/cli/config"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/logging"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdSeed() *cli.Command {
	var seedPath string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "seed-file",
			Usage:       "Path to the advocate seed TOML file",
			Value:       "seed/advocates.toml",
			Sources:     cli.EnvVars("NYAYASETU_SEED_FILE"),
			Destination: &seedPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load advocate seed data into the repository",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			seed, err := config.LoadSeedFile(seedPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load seed file")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			now := time.Now().UTC()
			for _, entry := range seed.Advocates {
				adv, err := entry.ToModel()
				if err != nil {
					return err
				}
				adv.CreatedAt = now
				adv.UpdatedAt = now

				if err := repo.Advocate().Put(ctx, adv); err != nil {
					return goerr.Wrap(err, "failed to store advocate", goerr.V("id", adv.ID))
				}
				logging.Default().Info("Seeded advocate",
					"id", adv.ID,
					"name", adv.Name,
					"states", adv.States,
				)
			}

			color.New(color.FgGreen, color.Bold).Printf("Seeded %d advocates from %s\n", len(seed.Advocates), seedPath)
			return nil
		},
	}
}
