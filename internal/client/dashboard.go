package client

import (
	"strings"

	"convomanage/internal/domain"
)

// Filter narrows a conference list by a case-insensitive substring match on
// title or description and by exact status equality. An empty search term or
// status leaves that dimension unfiltered.
func Filter(conferences []*domain.Conference, search string, status domain.ConferenceStatus) []*domain.Conference {
	search = strings.ToLower(strings.TrimSpace(search))
	out := []*domain.Conference{}
	for _, c := range conferences {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Stats summarizes a conference list for the dashboard header.
type Stats struct {
	Total     int `json:"total"`
	Draft     int `json:"draft"`
	Published int `json:"published"`
	Live      int `json:"live"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

func Summarize(conferences []*domain.Conference) Stats {
	s := Stats{Total: len(conferences)}
	for _, c := range conferences {
		switch c.Status {
		case domain.StatusDraft:
			s.Draft++
		case domain.StatusPublished:
			s.Published++
		case domain.StatusLive:
			s.Live++
		case domain.StatusCompleted:
			s.Completed++
		case domain.StatusCancelled:
			s.Cancelled++
		}
	}
	return s
}

// CardActions are the per-conference affordances a view may offer.
type CardActions struct {
	CanCreate      bool
	CanEdit        bool
	CanViewDetails bool
	CanJoinLive    bool
}

// ActionsFor returns the affordances for a role looking at a conference in
// the given status. Roles are matched exhaustively; an unrecognized role gets
// the attendee affordances.
func ActionsFor(role domain.Role, status domain.ConferenceStatus) CardActions {
	actions := CardActions{
		CanJoinLive: status == domain.StatusLive,
	}
	switch role {
	case domain.RoleOrganizer:
		actions.CanCreate = true
		actions.CanEdit = true
	case domain.RoleSpeaker:
		actions.CanViewDetails = true
	case domain.RoleAttendee:
		actions.CanViewDetails = true
	default:
		actions.CanViewDetails = true
	}
	return actions
}
