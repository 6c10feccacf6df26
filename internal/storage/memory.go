package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Ananth-NQI/bteam-backend/internal/apperrors"
	"github.com/Ananth-NQI/bteam-backend/internal/models"
)

// MemoryStore holds all data in memory, for tests and local runs
// without postgres. Rows are copied in and out so callers never share
// state with the store.
type MemoryStore struct {
	users         map[string]*models.User
	tokens        map[string]*models.VerificationToken
	policies      map[string]*models.Policy
	holidays      map[string]*models.Holiday
	announcements map[string]*models.Announcement
	tickets       map[string]*models.Ticket

	// Lock order: userMu before tokenMu before ticketMu
	userMu    sync.RWMutex
	tokenMu   sync.RWMutex
	contentMu sync.RWMutex
	ticketMu  sync.RWMutex

	now func() time.Time
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]*models.User),
		tokens:        make(map[string]*models.VerificationToken),
		policies:      make(map[string]*models.Policy),
		holidays:      make(map[string]*models.Holiday),
		announcements: make(map[string]*models.Announcement),
		tickets:       make(map[string]*models.Ticket),
		now:           time.Now,
	}
}

// SetClock overrides the timestamp source used for created/updated fields
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.now = now
}

// User operations
func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()
	return m.insertUserLocked(user)
}

func (m *MemoryStore) insertUserLocked(user *models.User) error {
	user.Prepare()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return apperrors.ErrConflict
		}
	}
	if _, exists := m.users[user.ID]; exists {
		return apperrors.ErrConflict
	}

	now := m.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	email = models.NormalizeEmail(email)
	for _, user := range m.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *MemoryStore) GetAllUsers(_ context.Context) ([]*models.User, error) {
	return m.listUsers(func(*models.User) bool { return true }), nil
}

func (m *MemoryStore) GetEmployees(_ context.Context) ([]*models.User, error) {
	return m.listUsers(func(u *models.User) bool { return u.Role == models.RoleEmployee }), nil
}

func (m *MemoryStore) listUsers(keep func(*models.User) bool) []*models.User {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	users := []*models.User{}
	for _, user := range m.users {
		if keep(user) {
			out := *user
			users = append(users, &out)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

func (m *MemoryStore) UpdateUser(_ context.Context, id string, upd *models.EmployeeUpdate) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	user, exists := m.users[id]
	if !exists {
		return apperrors.ErrNotFound
	}

	updated := *user
	upd.Apply(&updated)
	if updated.Email != user.Email {
		for otherID, other := range m.users {
			if otherID != id && other.Email == updated.Email {
				return apperrors.ErrConflict
			}
		}
	}
	updated.UpdatedAt = m.now()
	m.users[id] = &updated
	return nil
}

func (m *MemoryStore) DeleteUser(_ context.Context, id string) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()
	m.ticketMu.Lock()
	defer m.ticketMu.Unlock()

	delete(m.users, id)
	for ticketID, ticket := range m.tickets {
		if ticket.UserID == id {
			delete(m.tickets, ticketID)
		}
	}
	return nil
}

// Registration operations
func (m *MemoryStore) ReplaceVerificationToken(_ context.Context, token *models.VerificationToken) error {
	m.tokenMu.Lock()
	defer m.tokenMu.Unlock()

	stored := *token
	m.tokens[token.Identifier] = &stored
	return nil
}

func (m *MemoryStore) GetVerificationToken(_ context.Context, identifier, code string) (*models.VerificationToken, error) {
	m.tokenMu.RLock()
	defer m.tokenMu.RUnlock()

	token, exists := m.tokens[identifier]
	if !exists || !token.Matches(identifier, code) {
		return nil, apperrors.ErrNotFound
	}
	out := *token
	return &out, nil
}

// HasVerificationToken reports whether a token is pending for identifier
func (m *MemoryStore) HasVerificationToken(identifier string) bool {
	m.tokenMu.RLock()
	defer m.tokenMu.RUnlock()

	_, exists := m.tokens[identifier]
	return exists
}

func (m *MemoryStore) RegisterUser(_ context.Context, user *models.User) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()
	m.tokenMu.Lock()
	defer m.tokenMu.Unlock()

	if err := m.insertUserLocked(user); err != nil {
		return err
	}
	delete(m.tokens, user.Email)
	return nil
}

// Policy operations
func (m *MemoryStore) GetPolicies(_ context.Context) ([]*models.Policy, error) {
	m.contentMu.RLock()
	defer m.contentMu.RUnlock()

	policies := make([]*models.Policy, 0, len(m.policies))
	for _, p := range m.policies {
		out := *p
		policies = append(policies, &out)
	}
	sort.Slice(policies, func(i, j int) bool { return policies[i].CreatedAt.After(policies[j].CreatedAt) })
	return policies, nil
}

func (m *MemoryStore) CreatePolicy(_ context.Context, policy *models.Policy) error {
	m.contentMu.Lock()
	defer m.contentMu.Unlock()

	policy.Prepare()
	if _, exists := m.policies[policy.ID]; exists {
		return apperrors.ErrConflict
	}
	if policy.CreatedAt.IsZero() {
		policy.CreatedAt = m.now()
	}
	stored := *policy
	m.policies[policy.ID] = &stored
	return nil
}

func (m *MemoryStore) DeletePolicy(_ context.Context, id string) error {
	m.contentMu.Lock()
	defer m.contentMu.Unlock()

	delete(m.policies, id)
	return nil
}

// Holiday operations
func (m *MemoryStore) GetHolidays(_ context.Context) ([]*models.Holiday, error) {
	m.contentMu.RLock()
	defer m.contentMu.RUnlock()

	holidays := make([]*models.Holiday, 0, len(m.holidays))
	for _, h := range m.holidays {
		out := *h
		holidays = append(holidays, &out)
	}
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date.Before(holidays[j].Date) })
	return holidays, nil
}

func (m *MemoryStore) CreateHoliday(_ context.Context, holiday *models.Holiday) error {
	m.contentMu.Lock()
	defer m.contentMu.Unlock()

	holiday.Prepare()
	if _, exists := m.holidays[holiday.ID]; exists {
		return apperrors.ErrConflict
	}
	stored := *holiday
	m.holidays[holiday.ID] = &stored
	return nil
}

func (m *MemoryStore) DeleteHoliday(_ context.Context, id string) error {
	m.contentMu.Lock()
	defer m.contentMu.Unlock()

	delete(m.holidays, id)
	return nil
}

// Announcement operations
func (m *MemoryStore) GetAnnouncements(_ context.Context) ([]*models.Announcement, error) {
	m.contentMu.RLock()
	defer m.contentMu.RUnlock()

	announcements := make([]*models.Announcement, 0, len(m.announcements))
	for _, a := range m.announcements {
		out := *a
		announcements = append(announcements, &out)
	}
	sort.Slice(announcements, func(i, j int) bool { return announcements[i].Date.After(announcements[j].Date) })
	return announcements, nil
}

func (m *MemoryStore) CreateAnnouncement(_ context.Context, announcement *models.Announcement) error {
	m.contentMu.Lock()
	defer m.contentMu.Unlock()

	if announcement.Date.IsZero() {
		announcement.Date = m.now()
	}
	announcement.Prepare()
	if _, exists := m.announcements[announcement.ID]; exists {
		return apperrors.ErrConflict
	}
	stored := *announcement
	m.announcements[announcement.ID] = &stored
	return nil
}

func (m *MemoryStore) DeleteAnnouncement(_ context.Context, id string) error {
	m.contentMu.Lock()
	defer m.contentMu.Unlock()

	delete(m.announcements, id)
	return nil
}

// Ticket operations
func (m *MemoryStore) CreateTicket(_ context.Context, ticket *models.Ticket) error {
	m.userMu.RLock()
	_, ownerExists := m.users[ticket.UserID]
	m.userMu.RUnlock()
	if !ownerExists {
		return apperrors.NotFound("Ticket owner not found")
	}

	m.ticketMu.Lock()
	defer m.ticketMu.Unlock()

	ticket.Prepare()
	if _, exists := m.tickets[ticket.ID]; exists {
		return apperrors.ErrConflict
	}
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = m.now()
	}
	stored := *ticket
	stored.User = nil
	m.tickets[ticket.ID] = &stored
	return nil
}

func (m *MemoryStore) GetTicketsByUser(_ context.Context, userID string) ([]*models.Ticket, error) {
	m.ticketMu.RLock()
	defer m.ticketMu.RUnlock()

	tickets := []*models.Ticket{}
	for _, t := range m.tickets {
		if t.UserID == userID {
			out := *t
			tickets = append(tickets, &out)
		}
	}
	sortTickets(tickets)
	return tickets, nil
}

func sortTickets(tickets []*models.Ticket) {
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].CreatedAt.After(tickets[j].CreatedAt) })
}

func (m *MemoryStore) GetAllTicketDetails(_ context.Context) ([]*models.TicketDetail, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()
	m.ticketMu.RLock()
	defer m.ticketMu.RUnlock()

	tickets := make([]*models.Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		tickets = append(tickets, t)
	}
	sortTickets(tickets)

	details := make([]*models.TicketDetail, 0, len(tickets))
	for _, t := range tickets {
		details = append(details, models.NewTicketDetail(t, m.users[t.UserID]))
	}
	return details, nil
}

func (m *MemoryStore) GetTicketDetail(_ context.Context, id string) (*models.TicketDetail, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()
	m.ticketMu.RLock()
	defer m.ticketMu.RUnlock()

	ticket, exists := m.tickets[id]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	return models.NewTicketDetail(ticket, m.users[ticket.UserID]), nil
}

func (m *MemoryStore) UpdateTicketStatus(_ context.Context, id, status string) error {
	m.ticketMu.Lock()
	defer m.ticketMu.Unlock()

	ticket, exists := m.tickets[id]
	if !exists {
		return apperrors.ErrNotFound
	}
	ticket.Status = status
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
