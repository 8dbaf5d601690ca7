package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/helixedit/internal/event"
)

// eventCounter counts bus events by topic.
type eventCounter struct {
	total *prometheus.CounterVec
}

func newEventCounter(reg prometheus.Registerer) *eventCounter {
	c := &eventCounter{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "helixedit",
			Name:      "events_total",
			Help:      "Events published on the bus, by topic.",
		}, []string{"topic"}),
	}
	reg.MustRegister(c.total)
	return c
}

func (c *eventCounter) subscribe(bus *event.Bus) error {
	_, err := bus.Subscribe("**", func(_ context.Context, ev any) error {
		if tp, ok := ev.(event.TopicProvider); ok {
			c.total.WithLabelValues(string(tp.EventTopic())).Inc()
		}
		return nil
	})
	return err
}

// writeMetrics exports the registry in the text format for the node
// exporter textfile collector.
func (app *Application) writeMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, app.registry); err != nil {
		return opError("write metrics", path, err)
	}
	app.logger.Debug("metrics written", "path", path)
	return nil
}
