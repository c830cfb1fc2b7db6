package services

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/Deinys/SmartHome-Backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewEntry stores a reading unless its payload equals the latest reading for
// the same user and device type, in which case that reading is returned and
// created is false.
//
// The owner row is locked for the duration of the transaction so concurrent
// submissions for one user are serialized on stores that support row locks.
func (s *Service) NewEntry(ctx context.Context, userID uint, deviceType, deviceData string) (entry *models.Entry, created bool, err error) {
	dt, ok := models.ParseDeviceType(deviceType)
	if !ok {
		return nil, false, invalidInput("device type not recognized")
	}
	if deviceData == "" {
		return nil, false, invalidInput("device data is required")
	}
	if utf8.RuneCountInString(deviceData) > models.MaxDeviceDataLen {
		return nil, false, invalidInput("device data is too long")
	}

	err = s.transact(ctx, "create entry", func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&owner, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("user not found")
			}
			return err
		}

		var latest []models.Entry
		err := tx.Where("user_id = ? AND device_type = ?", userID, dt).
			Order("created DESC").Order("id DESC").
			Limit(1).
			Find(&latest).Error
		if err != nil {
			return err
		}
		if len(latest) == 1 && latest[0].DeviceData == deviceData {
			entry = &latest[0]
			return nil
		}

		row := models.Entry{UserID: userID, DeviceType: dt, DeviceData: deviceData}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		entry, created = &row, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return entry, created, nil
}

// ListEntries returns the user's entries in creation order, optionally
// restricted to one device type.
func (s *Service) ListEntries(ctx context.Context, userID uint, deviceType string) ([]models.Entry, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if deviceType != "" {
		dt, ok := models.ParseDeviceType(deviceType)
		if !ok {
			return nil, invalidInput("device type not recognized")
		}
		q = q.Where("device_type = ?", dt)
	}

	entries := []models.Entry{}
	if err := q.Order("created ASC").Order("id ASC").Find(&entries).Error; err != nil {
		return nil, storageFailure("list entries", err)
	}
	return entries, nil
}
