package events

// EventCollector accumulates domain events raised while a unit of work runs
// so they can be published together once it commits.
type EventCollector struct {
	events []DomainEvent
}

// Record appends domain events to the collector.
func (c *EventCollector) Record(events ...DomainEvent) {
	c.events = append(c.events, events...)
}

// Len reports how many events are pending.
func (c *EventCollector) Len() int { return len(c.events) }

// Events returns the collected domain events without clearing them.
func (c *EventCollector) Events() []DomainEvent {
	return c.events
}

// ClearEvents returns the collected domain events and clears the internal slice.
func (c *EventCollector) ClearEvents() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}
