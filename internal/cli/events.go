package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/quizhub/quiz-service/internal/events"
	"github.com/quizhub/quiz-service/internal/utils"
	"github.com/spf13/cobra"
)

func newEventsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the domain event stream",
	}
	cmd.AddCommand(newEventsTailCmd(configPath))
	return cmd
}

func newEventsTailCmd(configPath *string) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Log every event published to the Kafka topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			slogger := utils.ToSlogLogger(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			subscriber, err := events.NewKafkaSubscriber(events.SubscriberConfig{
				KafkaBrokers:  cfg.Events.GetKafkaBrokers(),
				ConsumerGroup: group,
				Logger:        slogger,
			})
			if err != nil {
				return err
			}
			defer subscriber.Close()

			logger.Info("Tailing events", "topic", cfg.Events.Topic, "brokers", cfg.Events.KafkaBrokers)
			return events.Consume(ctx, subscriber, cfg.Events.Topic, slogger, func(_ context.Context, event *events.Event) error {
				logger.Info("Event received",
					"event_id", event.ID,
					"event_type", event.Type,
					"timestamp", event.Timestamp,
					"data", event.Data)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&group, "group", "quizhub-tail", "Kafka consumer group")
	return cmd
}
