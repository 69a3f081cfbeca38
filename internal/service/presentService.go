package service

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/eventninja/eventninja/internal/entity"
	"github.com/eventninja/eventninja/pkg/nonce"
)

var outcomeNotices = map[string]string{
	string(entity.OutcomeSuccess):   "Thank you, your registration has been received.",
	string(entity.OutcomeDuplicate): "You are already registered for this event.",
	string(entity.OutcomeFull):      "This event is fully booked.",
	string(entity.OutcomeError):     "Something went wrong. Please try again later.",
}

const contentTemplate = `{{if .Notice}}<div class="en-notice en-notice-{{.Outcome}}"><p>{{.Notice}}</p></div>
{{end}}{{if .HasDetails}}<div class="en-event-details">
<h3>Event Details</h3>
<ul>
{{if .Date}}<li><strong>Date:</strong> {{.Date}}</li>
{{end}}{{if .Time}}<li><strong>Time:</strong> {{.Time}}</li>
{{end}}{{if .Location}}<li><strong>Location:</strong> {{.Location}}</li>
{{end}}{{if .HasCapacity}}<li><strong>Availability:</strong> {{.Available}} of {{.Capacity}} spots left</li>
{{end}}</ul>
</div>
{{end}}{{if .ShowForm}}<form method="post" action="/register" class="en-register-form">
<input type="hidden" name="action" value="en_register_event" />
<input type="hidden" name="event_id" value="{{.EventID}}" />
<input type="hidden" name="en_register_nonce" value="{{.Nonce}}" />
<p><label for="en_user_name">Name</label> <input type="text" id="en_user_name" name="en_user_name" required /></p>
<p><label for="en_user_email">Email</label> <input type="email" id="en_user_email" name="en_user_email" required /></p>
<p><button type="submit">Register</button></p>
</form>
{{else if .Full}}<p class="en-event-full">This event is fully booked.</p>
{{else}}<p class="en-event-closed">Registration for this event is closed.</p>
{{end}}`

var contentTmpl = template.Must(template.New("event_content").Parse(contentTemplate))

type contentView struct {
	Notice      string
	Outcome     string
	HasDetails  bool
	Date        string
	Time        string
	Location    string
	HasCapacity bool
	Capacity    int
	Available   int
	ShowForm    bool
	Full        bool
	EventID     int64
	Nonce       string
}

type presentService struct {
	events        EventService
	registrations RegistrationService
	nonces        *nonce.Service
	now           func() time.Time
}

func NewPresenter(events EventService, registrations RegistrationService, nonces *nonce.Service) Presenter {
	return &presentService{
		events:        events,
		registrations: registrations,
		nonces:        nonces,
		now:           time.Now,
	}
}

// RenderContent appends the details block and the registration form
// (or the full/closed notice) to the event content. The details block
// omits absent fields and disappears entirely when no metadata is set.
// A full event shows the booked notice instead of the form even when
// its date is still ahead; a past date closes registration regardless
// of remaining capacity.
func (s *presentService) RenderContent(ctx context.Context, content string, eventID int64, session, outcome string) (template.HTML, error) {
	details, err := s.events.GetDetails(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("failed to load event details: %w", err)
	}

	view := contentView{
		Outcome:     outcome,
		Notice:      outcomeNotices[outcome],
		HasDetails:  !details.Empty(),
		Date:        details.Date,
		Time:        details.Time,
		Location:    details.Location,
		HasCapacity: !details.Unlimited(),
		Capacity:    details.Capacity,
		EventID:     eventID,
	}

	full := false
	if !details.Unlimited() {
		count, err := s.registrations.CountForEvent(ctx, eventID)
		if err != nil {
			return "", fmt.Errorf("failed to count registrations: %w", err)
		}
		view.Available = details.Capacity - count
		if view.Available < 0 {
			view.Available = 0
		}
		full = count >= details.Capacity
	}

	upcoming := details.Upcoming(s.now())
	view.ShowForm = upcoming && !full
	view.Full = upcoming && full
	if view.ShowForm {
		view.Nonce = s.nonces.Create(session, nonce.ActionRegister)
	}

	var sb strings.Builder
	if err := contentTmpl.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("failed to render event content: %w", err)
	}

	return template.HTML(content + "\n" + sb.String()), nil
}
