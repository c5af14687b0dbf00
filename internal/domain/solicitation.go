package domain

import "time"

// Status enumerates board columns a solicitation moves through.
type Status string

const (
	StatusTodo           Status = "todo"
	StatusVideoMaterials Status = "video-materiais"
	StatusEventCoverage  Status = "cobertura-eventos"
	StatusArt            Status = "arte"
	StatusDoing          Status = "fazendo"
	StatusApproval       Status = "aprovacao"
	StatusStalled        Status = "parado"
	StatusDone           Status = "done"
	StatusArchived       Status = "archived"

	// StatusInProgressAlias is accepted on the wire by older dashboard
	// builds and normalizes to StatusDoing.
	StatusInProgressAlias Status = "in-progress"
)

var knownStatuses = map[Status]struct{}{
	StatusTodo:           {},
	StatusVideoMaterials: {},
	StatusEventCoverage:  {},
	StatusArt:            {},
	StatusDoing:          {},
	StatusApproval:       {},
	StatusStalled:        {},
	StatusDone:           {},
	StatusArchived:       {},
}

var inProductionStatuses = map[Status]struct{}{
	StatusVideoMaterials: {},
	StatusEventCoverage:  {},
	StatusArt:            {},
	StatusDoing:          {},
	StatusApproval:       {},
	StatusStalled:        {},
}

// NormalizeStatus maps wire aliases onto canonical statuses.
func NormalizeStatus(s Status) Status {
	if s == StatusInProgressAlias {
		return StatusDoing
	}
	return s
}

// IsKnownStatus reports whether s is a member of the board's status set.
func IsKnownStatus(s Status) bool {
	_, ok := knownStatuses[NormalizeStatus(s)]
	return ok
}

// IsInProduction reports whether s is one of the working columns
// between intake and completion.
func IsInProduction(s Status) bool {
	_, ok := inProductionStatuses[NormalizeStatus(s)]
	return ok
}

// IsTerminal reports whether s no longer counts toward deadline alerts.
func IsTerminal(s Status) bool {
	s = NormalizeStatus(s)
	return s == StatusDone || s == StatusArchived
}

// Solicitation is the aggregate for marketing service requests.
type Solicitation struct {
	ID             string
	Department     string
	RequesterEmail string
	ProtocolCode   string
	RequestType    string
	Description    string
	Channels       []string
	DueDate        string // YYYY-MM-DD
	DueTime        string // HH:MM, optional
	Notes          string
	AttachmentURL  string
	Status         Status
	CreatedAt      time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
	ArchivedAt     *time.Time
}

// DueAt combines DueDate and DueTime into an absolute deadline in loc.
// A solicitation without a time of day is due at end of that day.
// The second return value is false when DueDate cannot be parsed.
func (s *Solicitation) DueAt(loc *time.Location) (time.Time, bool) {
	day, err := time.ParseInLocation("2006-01-02", s.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	if s.DueTime != "" {
		if t, err := time.ParseInLocation("2006-01-02 15:04", s.DueDate+" "+s.DueTime, loc); err == nil {
			return t, true
		}
	}
	return day.Add(24*time.Hour - time.Second), true
}
