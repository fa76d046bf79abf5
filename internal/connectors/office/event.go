package office

import (
	"encoding/json"
	"time"

	"github.com/raksonibs/waffle/internal/core/domain"
)

// Raw item types returned by the Outlook calendar view.
const (
	itemTypeSeriesMaster = "SeriesMaster"
	itemTypeOccurrence   = "Occurrence"

	// reasonDeleted marks a delta update for an event removed upstream.
	reasonDeleted = "deleted"
)

// emptyParticipants is the placeholder emitted for events without attendees.
// Not a valid JSON array; existing consumers match it literally, so it is
// preserved as-is.
const emptyParticipants = "{[]}"

// RawItem is one event item as returned by the Outlook REST API. Field names
// are PascalCase on the wire. Items are transient and consumed within a
// single fetch pass.
type RawItem struct {
	ID             string            `json:"Id"`
	Type           string            `json:"Type"`
	SeriesMasterID string            `json:"SeriesMasterId"`
	Reason         string            `json:"reason"`
	Subject        string            `json:"Subject"`
	BodyPreview    string            `json:"BodyPreview"`
	Body           *ItemBody         `json:"Body"`
	Start          *DateTimeTimeZone `json:"Start"`
	End            *DateTimeTimeZone `json:"End"`
	Location       *ItemLocation     `json:"Location"`
	Organizer      *Recipient        `json:"Organizer"`
	Attendees      []Recipient       `json:"Attendees"`
	ShowAs         string            `json:"ShowAs"`
	IsOrganizer    bool              `json:"IsOrganizer"`
	IsReminderOn   bool              `json:"IsReminderOn"`
	IsCancelled    bool              `json:"IsCancelled"`
	IsAllDay       bool              `json:"IsAllDay"`
}

// ItemBody is the event body content.
type ItemBody struct {
	ContentType string `json:"ContentType"`
	Content     string `json:"Content"`
}

// DateTimeTimeZone is a date-time with an accompanying time zone name.
type DateTimeTimeZone struct {
	DateTime string `json:"DateTime"`
	TimeZone string `json:"TimeZone"`
}

// ItemLocation is the event location.
type ItemLocation struct {
	DisplayName string `json:"DisplayName"`
}

// Recipient is an organiser or attendee.
type Recipient struct {
	EmailAddress EmailAddress `json:"EmailAddress"`
}

// EmailAddress is a name and address pair.
type EmailAddress struct {
	Name    string `json:"Name"`
	Address string `json:"Address"`
}

// IsDeleted reports whether the item is a delta deletion marker.
func (i *RawItem) IsDeleted() bool {
	return i.Reason == reasonDeleted
}

// NormalizeItem converts a raw provider item into a canonical event.
//
// The all-day flag is a heuristic: the provider flag OR a start and end on
// different calendar dates, because some events span days without the
// explicit flag set.
func NormalizeItem(item *RawItem) domain.Event {
	start := parseAPITime(item.Start)
	end := parseAPITime(item.End)

	var body, bodyType string
	if item.Body != nil {
		body = item.Body.Content
		bodyType = item.Body.ContentType
	}

	var location string
	if item.Location != nil {
		location = item.Location.DisplayName
	}

	var organizer string
	if item.Organizer != nil {
		organizer = item.Organizer.EmailAddress.Address
	}

	return domain.Event{
		Start:        start.Format(time.RFC3339),
		End:          end.Format(time.RFC3339),
		Title:        item.Subject,
		ProviderID:   item.ID,
		Body:         body,
		BodyPreview:  item.BodyPreview,
		BodyType:     bodyType,
		ShowAs:       item.ShowAs,
		IsEditable:   false,
		IsOrganizer:  item.IsOrganizer,
		IsReminderOn: item.IsReminderOn,
		IsCancelled:  item.IsCancelled,
		Participants: encodeParticipants(item.Attendees),
		Organizer:    organizer,
		Location:     location,
		IsAllDay:     item.IsAllDay || !sameCalendarDay(start, end),
	}
}

// NormalizeOccurrence normalises a recurring-event occurrence, copying the
// display fields from its series master when one is present in the same
// fetch pass. An unmatched occurrence normalises with its own fields.
func NormalizeOccurrence(occurrence *RawItem, masters []*RawItem) domain.Event {
	for _, master := range masters {
		if master.ID == occurrence.SeriesMasterID {
			occurrence.Subject = master.Subject
			occurrence.Body = master.Body
			occurrence.BodyPreview = master.BodyPreview
			occurrence.IsAllDay = master.IsAllDay
			break
		}
	}
	return NormalizeItem(occurrence)
}

// parseAPITime parses an Outlook API date-time. The API returns zone-less
// UTC timestamps, so a Z suffix is appended before parsing.
func parseAPITime(dt *DateTimeTimeZone) time.Time {
	if dt == nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, dt.DateTime+"Z")
	if err != nil {
		return time.Time{}
	}
	return t
}

// sameCalendarDay reports whether two instants fall on the same UTC date.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// encodeParticipants serialises attendees as a JSON array of {name, email}
// pairs in source order, or the legacy placeholder when there are none.
func encodeParticipants(attendees []Recipient) string {
	if len(attendees) == 0 {
		return emptyParticipants
	}

	type participant struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	list := make([]participant, 0, len(attendees))
	for _, a := range attendees {
		list = append(list, participant{
			Name:  a.EmailAddress.Name,
			Email: a.EmailAddress.Address,
		})
	}

	data, err := json.Marshal(list)
	if err != nil {
		return emptyParticipants
	}
	return string(data)
}
