package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/buildsense/energy-backend/config"
	"github.com/buildsense/energy-backend/internal/events"
)

type eventSource interface {
	Next(ctx context.Context) (events.Event, error)
}

func runEvents(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("events", flag.ContinueOnError)
	group := fs.String("group", "energyctl", "consumer group id")
	limit := fs.Int("n", 0, "stop after n events, 0 to follow until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(cfg.Kafka.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is not set")
	}

	consumer := events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, *group)
	defer consumer.Close()

	return tailEvents(ctx, consumer, out, *limit)
}

// tailEvents prints events until limit is reached or ctx is cancelled.
func tailEvents(ctx context.Context, src eventSource, w io.Writer, limit int) error {
	for n := 0; limit <= 0 || n < limit; n++ {
		e, err := src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fmt.Fprintf(w, "%s  %-15s %s  %s\n",
			e.OccurredAt.UTC().Format("2006-01-02T15:04:05Z"), e.Type, e.BuildingDesignID, e.Name)
	}
	return nil
}
