package main

import (
	"context"
	"log/slog"

	"github.com/alecgard/quill/internal/config"
	"github.com/alecgard/quill/internal/contact"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the contacts table with the built-in sample contacts",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	setupLogging()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	store := contact.NewStore(pool)

	contacts, err := contact.SampleSource{}.Contacts(ctx)
	if err != nil {
		return err
	}

	for _, c := range contacts {
		if err := store.Insert(ctx, c); err != nil {
			return err
		}
		slog.Info("seeded contact", "email", c.Email, "vip", c.VIP())
	}

	slog.Info("seeding complete", "contacts", len(contacts))
	return nil
}
