package handlers

// HandlerBundle groups every handler for route registration.
type HandlerBundle struct {
	Schedule     *ScheduleHandler
	Appointments *AppointmentHandler
	Providers    *ProviderHandler
	Leaves       *LeaveHandler
	Events       *EventHandler
}
