// Package event provides the publish/subscribe bus through which the editor
// reports what happened to a document.
//
// Events are typed values carrying a hierarchical dot-separated topic:
//
//	design.changed      an edit replaced the current design
//	edit.rejected       an edit failed and left the document untouched
//	history.undone      an undo step was applied
//	history.redone      a redo step was applied
//	config.reloaded     the configuration file changed on disk
//
// Subscribers register a topic pattern. A "*" segment matches exactly one
// segment and "**" matches zero or more:
//
//	bus := event.NewBus()
//	sub, _ := bus.Subscribe("history.*", func(ctx context.Context, ev any) error {
//	    moved := ev.(event.Event[event.HistoryMoved])
//	    ...
//	})
//	defer bus.Unsubscribe(sub)
//
// Delivery is synchronous and in subscription order. A handler that panics
// is recovered and counted; it does not stop delivery to the others.
package event
