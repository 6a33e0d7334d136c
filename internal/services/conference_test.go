package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"convomanage/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	err     error // if set, Create returns this error
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) add(id string, role domain.Role) *domain.User {
	u := &domain.User{ID: id, Email: id + "@example.com", Role: role}
	f.byID[id] = u
	f.byEmail[u.Email] = u
	return u
}

// fakeConferenceRepo is an in-memory ConferenceRepository for tests.
type fakeConferenceRepo struct {
	byID      map[string]*domain.Conference
	createErr error
	listErr   error
	nextID    int
}

func newFakeConferenceRepo() *fakeConferenceRepo {
	return &fakeConferenceRepo{
		byID:   make(map[string]*domain.Conference),
		nextID: 1,
	}
}

func (f *fakeConferenceRepo) Create(ctx context.Context, c *domain.Conference) error {
	if f.createErr != nil {
		return f.createErr
	}
	c.ID = fmt.Sprintf("conf-%d", f.nextID)
	f.nextID++
	f.byID[c.ID] = c
	return nil
}

func (f *fakeConferenceRepo) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeConferenceRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*domain.Conference{}
	for _, c := range f.byID {
		if c.OrganizerID == organizerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConferenceRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*domain.Conference{}
	for _, id := range ids {
		if c, ok := f.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConferenceRepo) ListByStatus(ctx context.Context, status domain.ConferenceStatus) ([]*domain.Conference, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*domain.Conference{}
	for _, c := range f.byID {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConferenceRepo) Update(ctx context.Context, id string, patch domain.ConferencePatch) (*domain.Conference, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.IsPaid != nil {
		c.IsPaid = *patch.IsPaid
		if !c.IsPaid {
			c.TicketPrice = nil
		}
	}
	if patch.TicketPrice != nil {
		c.TicketPrice = patch.TicketPrice
	}
	return c, nil
}

func (f *fakeConferenceRepo) add(id, organizerID string, status domain.ConferenceStatus) *domain.Conference {
	c := &domain.Conference{ID: id, Title: id, OrganizerID: organizerID, Status: status}
	f.byID[id] = c
	return c
}

// fakeRegistrationRepo is an in-memory RegistrationRepository for tests.
type fakeRegistrationRepo struct {
	confirmed map[string][]string // userID -> conference ids
	byKey     map[string]*domain.Registration
	byUser    map[string][]*domain.Registration
	err       error
	createErr error
	nextID    int
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		confirmed: make(map[string][]string),
		byKey:     make(map[string]*domain.Registration),
		byUser:    make(map[string][]*domain.Registration),
		nextID:    1,
	}
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	if f.createErr != nil {
		return f.createErr
	}
	reg.ID = fmt.Sprintf("reg-%d", f.nextID)
	f.nextID++
	f.byKey[reg.ConferenceID+":"+reg.UserID] = reg
	f.byUser[reg.UserID] = append(f.byUser[reg.UserID], reg)
	return nil
}

func (f *fakeRegistrationRepo) GetByConferenceAndUser(ctx context.Context, conferenceID, userID string) (*domain.Registration, error) {
	reg, ok := f.byKey[conferenceID+":"+userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return reg, nil
}

func (f *fakeRegistrationRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func (f *fakeRegistrationRepo) ConfirmedConferenceIDs(ctx context.Context, userID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.confirmed[userID], nil
}

func TestConferenceService_ListForUser_Organizer(t *testing.T) {
	users := newFakeUserRepo()
	users.add("org-1", domain.RoleOrganizer)
	confs := newFakeConferenceRepo()
	confs.add("conf-a", "org-1", domain.StatusDraft)
	confs.add("conf-b", "org-1", domain.StatusPublished)
	confs.add("conf-c", "other", domain.StatusPublished)
	svc := NewConferenceService(confs, newFakeRegistrationRepo(), users, testLogger())

	got, err := svc.ListForUser(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, c := range got {
		assert.Equal(t, "org-1", c.OrganizerID)
	}
}

func TestConferenceService_ListForUser_Attendee(t *testing.T) {
	users := newFakeUserRepo()
	users.add("att-1", domain.RoleAttendee)
	confs := newFakeConferenceRepo()
	confs.add("conf-a", "org-1", domain.StatusPublished)
	confs.add("conf-b", "org-1", domain.StatusPublished)
	regs := newFakeRegistrationRepo()
	regs.confirmed["att-1"] = []string{"conf-b"}
	svc := NewConferenceService(confs, regs, users, testLogger())

	got, err := svc.ListForUser(context.Background(), "att-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "conf-b", got[0].ID)
}

func TestConferenceService_ListForUser_AttendeeRegistrationErrorDegrades(t *testing.T) {
	users := newFakeUserRepo()
	users.add("att-1", domain.RoleAttendee)
	regs := newFakeRegistrationRepo()
	regs.err = errors.New("connection refused")
	svc := NewConferenceService(newFakeConferenceRepo(), regs, users, testLogger())

	got, err := svc.ListForUser(context.Background(), "att-1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestConferenceService_ListForUser_AttendeeNoRegistrations(t *testing.T) {
	users := newFakeUserRepo()
	users.add("att-1", domain.RoleAttendee)
	confs := newFakeConferenceRepo()
	confs.add("conf-a", "org-1", domain.StatusPublished)
	svc := NewConferenceService(confs, newFakeRegistrationRepo(), users, testLogger())

	got, err := svc.ListForUser(context.Background(), "att-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConferenceService_ListForUser_SpeakerSeesPublished(t *testing.T) {
	users := newFakeUserRepo()
	users.add("spk-1", domain.RoleSpeaker)
	confs := newFakeConferenceRepo()
	confs.add("conf-a", "org-1", domain.StatusDraft)
	confs.add("conf-b", "org-1", domain.StatusPublished)
	svc := NewConferenceService(confs, newFakeRegistrationRepo(), users, testLogger())

	got, err := svc.ListForUser(context.Background(), "spk-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.StatusPublished, got[0].Status)
}

func TestConferenceService_ListForUser_UnknownRoleSeesPublished(t *testing.T) {
	users := newFakeUserRepo()
	u := users.add("odd-1", domain.RoleAttendee)
	u.Role = domain.Role("superuser")
	confs := newFakeConferenceRepo()
	confs.add("conf-a", "org-1", domain.StatusPublished)
	svc := NewConferenceService(confs, newFakeRegistrationRepo(), users, testLogger())

	got, err := svc.ListForUser(context.Background(), "odd-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestConferenceService_Create(t *testing.T) {
	users := newFakeUserRepo()
	users.add("org-1", domain.RoleOrganizer)
	confs := newFakeConferenceRepo()
	svc := NewConferenceService(confs, newFakeRegistrationRepo(), users, testLogger())

	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	got, err := svc.Create(context.Background(), "org-1", domain.ConferenceDraft{
		Title:       "GopherCon",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 2),
		IsPaid:      true,
		TicketPrice: "49.99",
		Status:      domain.StatusPublished,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "org-1", got.OrganizerID)
	assert.Equal(t, "UTC", got.Timezone)
	require.NotNil(t, got.TicketPrice)
	assert.Equal(t, 49.99, *got.TicketPrice)
}

func TestConferenceService_Create_FreeConferenceIgnoresPrice(t *testing.T) {
	users := newFakeUserRepo()
	users.add("org-1", domain.RoleOrganizer)
	svc := NewConferenceService(newFakeConferenceRepo(), newFakeRegistrationRepo(), users, testLogger())

	got, err := svc.Create(context.Background(), "org-1", domain.ConferenceDraft{
		Title:       "Community Day",
		IsPaid:      false,
		TicketPrice: 25.0,
	})
	require.NoError(t, err)
	assert.Nil(t, got.TicketPrice)
	assert.Equal(t, domain.StatusDraft, got.Status)
}

func TestConferenceService_Create_NonOrganizerForbidden(t *testing.T) {
	users := newFakeUserRepo()
	users.add("att-1", domain.RoleAttendee)
	svc := NewConferenceService(newFakeConferenceRepo(), newFakeRegistrationRepo(), users, testLogger())

	_, err := svc.Create(context.Background(), "att-1", domain.ConferenceDraft{Title: "Nope"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestConferenceService_Create_Validation(t *testing.T) {
	users := newFakeUserRepo()
	users.add("org-1", domain.RoleOrganizer)
	svc := NewConferenceService(newFakeConferenceRepo(), newFakeRegistrationRepo(), users, testLogger())

	_, err := svc.Create(context.Background(), "org-1", domain.ConferenceDraft{Title: "  "})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), "org-1", domain.ConferenceDraft{
		Title:  "Bad status",
		Status: domain.ConferenceStatus("archived"),
	})
	assert.Error(t, err)
}

func TestConferenceService_Update(t *testing.T) {
	users := newFakeUserRepo()
	users.add("org-1", domain.RoleOrganizer)
	confs := newFakeConferenceRepo()
	price := 100.0
	c := confs.add("conf-a", "org-1", domain.StatusPublished)
	c.IsPaid = true
	c.TicketPrice = &price
	svc := NewConferenceService(confs, newFakeRegistrationRepo(), users, testLogger())

	title := "Renamed"
	got, err := svc.Update(context.Background(), "conf-a", "org-1", domain.ConferencePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	// Untouched fields survive the patch.
	require.NotNil(t, got.TicketPrice)
	assert.Equal(t, 100.0, *got.TicketPrice)
}

func TestConferenceService_Update_MarkFreeClearsPrice(t *testing.T) {
	users := newFakeUserRepo()
	users.add("org-1", domain.RoleOrganizer)
	confs := newFakeConferenceRepo()
	price := 100.0
	c := confs.add("conf-a", "org-1", domain.StatusPublished)
	c.IsPaid = true
	c.TicketPrice = &price
	svc := NewConferenceService(confs, newFakeRegistrationRepo(), users, testLogger())

	free := false
	stale := 10.0
	got, err := svc.Update(context.Background(), "conf-a", "org-1", domain.ConferencePatch{IsPaid: &free, TicketPrice: &stale})
	require.NoError(t, err)
	assert.False(t, got.IsPaid)
	assert.Nil(t, got.TicketPrice)
}

func TestConferenceService_Update_NotOwnerForbidden(t *testing.T) {
	users := newFakeUserRepo()
	users.add("org-2", domain.RoleOrganizer)
	confs := newFakeConferenceRepo()
	confs.add("conf-a", "org-1", domain.StatusPublished)
	svc := NewConferenceService(confs, newFakeRegistrationRepo(), users, testLogger())

	title := "Hijack"
	_, err := svc.Update(context.Background(), "conf-a", "org-2", domain.ConferencePatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestConferenceService_Update_NotFound(t *testing.T) {
	users := newFakeUserRepo()
	users.add("org-1", domain.RoleOrganizer)
	svc := NewConferenceService(newFakeConferenceRepo(), newFakeRegistrationRepo(), users, testLogger())

	title := "Ghost"
	_, err := svc.Update(context.Background(), "missing", "org-1", domain.ConferencePatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
