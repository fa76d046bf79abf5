package domain

// Event is the canonical calendar event handed to consumers for persistence.
// Values are immutable once produced by the normaliser.
type Event struct {
	// Start and End are RFC 3339 timestamps.
	Start string
	End   string
	Title string
	// ProviderID is the provider-assigned event identifier.
	ProviderID string
	Body        string
	BodyPreview string
	// BodyType is the provider content type, e.g. "HTML" or "Text".
	BodyType string
	// ShowAs is the free/busy status, e.g. "Busy", "Tentative".
	ShowAs       string
	IsEditable   bool
	IsOrganizer  bool
	IsReminderOn bool
	IsCancelled  bool
	// Participants is a JSON-encoded array of {name, email} pairs, or the
	// legacy "{[]}" placeholder when the event has no attendees.
	Participants string
	// Organizer is the organiser's email address, empty when absent.
	Organizer string
	// Location is the display name of the event location, empty when absent.
	Location string
	IsAllDay bool
}

// SyncResult is the terminal output of one calendar sync run.
type SyncResult struct {
	Events []Event
	// DeltaToken is the checkpoint to present on the next sync. Empty when
	// the provider issued no usable token during this run.
	DeltaToken string
}

// SyncOptions controls how a calendar view is fetched.
type SyncOptions struct {
	// UseDelta presents the account's stored delta token on the first
	// request, fetching only changes since that checkpoint.
	UseDelta bool
	// TrackChanges asks the provider for change-tracking semantics so a
	// new delta token is issued at the end of the run.
	TrackChanges bool
}
