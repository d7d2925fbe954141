// internal/services/notification_service.go
package services

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/agrohaat/agrohaat-backend/internal/apperrors"
	"github.com/agrohaat/agrohaat-backend/internal/config"
	"github.com/agrohaat/agrohaat-backend/internal/i18n"
	"github.com/agrohaat/agrohaat-backend/internal/models"
	"github.com/agrohaat/agrohaat-backend/internal/utils"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

// CreateWinNotification records the auction-won notification for the winning
// dealer. It writes through tx so settlement and notification commit together.
func (s *NotificationService) CreateWinNotification(tx *gorm.DB, listing *models.Listing, lang string) (*models.Notification, error) {
	if listing.HighestBidderID == nil {
		return nil, apperrors.ErrNoBidsPlaced
	}

	notification := &models.Notification{
		UserID:    *listing.HighestBidderID,
		Type:      models.NotificationTypeWin,
		Message:   i18n.T(lang, i18n.KeyBidWonNotice, listing.CropName),
		ListingID: &listing.ID,
	}

	if err := tx.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create win notification: %w", err)
	}

	return notification, nil
}

func (s *NotificationService) ListForUser(userID uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	var notifications []models.Notification
	var total int64

	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	if err := utils.ApplyPagination(query.Order("created_at DESC"), params).
		Preload("Listing").
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	result := utils.CreatePaginationResult(notifications, total, params)
	return &result, nil
}

func (s *NotificationService) MarkRead(userID, notificationID uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, "id = ?", notificationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: notification", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	if notification.UserID != userID {
		return nil, apperrors.ErrForbidden
	}

	if notification.ReadAt == nil {
		now := time.Now()
		notification.ReadAt = &now
		if err := s.db.Model(&notification).Update("read_at", &now).Error; err != nil {
			return nil, fmt.Errorf("failed to mark notification read: %w", err)
		}
	}

	return &notification, nil
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// SendWinEmail mails the winning dealer after settlement commits. Failures are
// logged, never surfaced: the in-database notification is the source of truth.
func (s *NotificationService) SendWinEmail(user *models.User, listing *models.Listing) {
	if s.config.Email.SMTPHost == "" {
		return
	}

	subject := "You won the auction"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nYour bid of %.2f on %s was accepted. Log in to download your cash memo.\r\n\r\n%s",
		user.Name, listing.SettlementPrice(), listing.CropName, s.config.Email.FromName,
	)

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, user.Email, subject, body)

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)
	addr := s.config.Email.SMTPHost + ":" + s.config.Email.SMTPPort

	if err := smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{user.Email}, []byte(msg)); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("Failed to send win email")
	}
}
