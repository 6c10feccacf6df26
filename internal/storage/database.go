package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ananth-NQI/bteam-backend/internal/apperrors"
	"github.com/Ananth-NQI/bteam-backend/internal/models"
)

// DatabaseStore implements Store on top of gorm
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by db. The connection should be
// opened with TranslateError so unique violations surface as ErrDuplicatedKey.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrConflict
	}
	return err
}

// User operations
func (s *DatabaseStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *DatabaseStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := s.db.WithContext(ctx).Order("name ASC").Find(&users).Error
	return users, translate(err)
}

func (s *DatabaseStore) GetEmployees(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleEmployee).
		Order("name ASC").
		Find(&users).Error
	return users, translate(err)
}

func (s *DatabaseStore) UpdateUser(ctx context.Context, id string, upd *models.EmployeeUpdate) error {
	cols := upd.Columns()
	if len(cols) == 0 {
		_, err := s.GetUser(ctx, id)
		return err
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteUser removes the user; tickets go with it through the FK cascade
func (s *DatabaseStore) DeleteUser(ctx context.Context, id string) error {
	return translate(s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error)
}

// Registration operations

// ReplaceVerificationToken upserts on identifier, so an older code for the
// same email is overwritten in a single statement.
func (s *DatabaseStore) ReplaceVerificationToken(ctx context.Context, token *models.VerificationToken) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identifier"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "expires"}),
	}).Create(token).Error
	return translate(err)
}

func (s *DatabaseStore) GetVerificationToken(ctx context.Context, identifier, code string) (*models.VerificationToken, error) {
	var token models.VerificationToken
	err := s.db.WithContext(ctx).
		Where("identifier = ? AND token = ?", identifier, code).
		First(&token).Error
	if err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

func (s *DatabaseStore) RegisterUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return translate(err)
		}
		return tx.Where("identifier = ?", user.Email).Delete(&models.VerificationToken{}).Error
	})
}

// Policy operations
func (s *DatabaseStore) GetPolicies(ctx context.Context) ([]*models.Policy, error) {
	var policies []*models.Policy
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&policies).Error
	return policies, translate(err)
}

func (s *DatabaseStore) CreatePolicy(ctx context.Context, policy *models.Policy) error {
	return translate(s.db.WithContext(ctx).Create(policy).Error)
}

func (s *DatabaseStore) DeletePolicy(ctx context.Context, id string) error {
	return translate(s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Policy{}).Error)
}

// Holiday operations
func (s *DatabaseStore) GetHolidays(ctx context.Context) ([]*models.Holiday, error) {
	var holidays []*models.Holiday
	err := s.db.WithContext(ctx).Order("date ASC").Find(&holidays).Error
	return holidays, translate(err)
}

func (s *DatabaseStore) CreateHoliday(ctx context.Context, holiday *models.Holiday) error {
	return translate(s.db.WithContext(ctx).Create(holiday).Error)
}

func (s *DatabaseStore) DeleteHoliday(ctx context.Context, id string) error {
	return translate(s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Holiday{}).Error)
}

// Announcement operations
func (s *DatabaseStore) GetAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	var announcements []*models.Announcement
	err := s.db.WithContext(ctx).Order("date DESC").Find(&announcements).Error
	return announcements, translate(err)
}

func (s *DatabaseStore) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	return translate(s.db.WithContext(ctx).Create(announcement).Error)
}

func (s *DatabaseStore) DeleteAnnouncement(ctx context.Context, id string) error {
	return translate(s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Announcement{}).Error)
}

// Ticket operations
func (s *DatabaseStore) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(ticket).Error)
}

func (s *DatabaseStore) GetTicketsByUser(ctx context.Context, userID string) ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, translate(err)
}

const ticketDetailColumns = `tickets.id, tickets.subject, tickets.category, tickets.description,
	tickets.status, tickets.created_at, COALESCE(tickets.attachment_url, '') AS attachment_url, tickets.user_id,
	COALESCE(users.name, '') AS user_name, COALESCE(users.email, '') AS user_email,
	COALESCE(users.mobile, '') AS user_mobile, COALESCE(users.department, '') AS user_department,
	COALESCE(users.designation, '') AS user_designation`

func (s *DatabaseStore) ticketDetails(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("tickets").
		Select(ticketDetailColumns).
		Joins("LEFT JOIN users ON users.id = tickets.user_id")
}

func (s *DatabaseStore) GetAllTicketDetails(ctx context.Context) ([]*models.TicketDetail, error) {
	var details []*models.TicketDetail
	err := s.ticketDetails(ctx).Order("tickets.created_at DESC").Scan(&details).Error
	return details, translate(err)
}

func (s *DatabaseStore) GetTicketDetail(ctx context.Context, id string) (*models.TicketDetail, error) {
	var details []*models.TicketDetail
	if err := s.ticketDetails(ctx).Where("tickets.id = ?", id).Limit(1).Scan(&details).Error; err != nil {
		return nil, translate(err)
	}
	if len(details) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return details[0], nil
}

// UpdateTicketStatus sets the status; postgres counts matched rows, so
// re-applying the current status still reports one affected row.
func (s *DatabaseStore) UpdateTicketStatus(ctx context.Context, id, status string) error {
	res := s.db.WithContext(ctx).Model(&models.Ticket{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
