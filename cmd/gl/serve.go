package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zulandar/greenlight/internal/config"
	"github.com/zulandar/greenlight/internal/dashboard"
	"github.com/zulandar/greenlight/internal/notify"
	"github.com/zulandar/greenlight/internal/notify/discord"
	"github.com/zulandar/greenlight/internal/notify/slack"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the readiness API server and notification schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := openDB(configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			notifier, err := buildNotifier(cfg.Notify)
			if err != nil {
				return err
			}
			defer notifier.Close()

			out := cmd.OutOrStdout()
			if notifier.Enabled() {
				fmt.Fprintf(out, "Notifications on, digest schedule %q\n", cfg.Notify.DigestCron)
				go notify.RunDigestSchedule(ctx, gormDB, notifier, cfg.Notify.DigestCron)
			}

			return dashboard.Start(ctx, dashboard.StartOpts{
				DB:   gormDB,
				Port: cfg.Server.Port,
				Out:  out,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	return cmd
}

// buildNotifier assembles the notifier from whichever chat adapters have
// credentials configured.
func buildNotifier(cfg config.NotifyConfig) (*notify.Notifier, error) {
	var adapters []notify.Adapter

	if cfg.Slack.BotToken != "" {
		a, err := slack.New(slack.AdapterOpts{
			BotToken:  cfg.Slack.BotToken,
			ChannelID: cfg.Slack.Channel,
		})
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}

	if cfg.Discord.Token != "" {
		a, err := discord.New(discord.AdapterOpts{
			BotToken:  cfg.Discord.Token,
			ChannelID: cfg.Discord.ChannelID,
		})
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}

	return notify.NewNotifier(adapters...), nil
}
