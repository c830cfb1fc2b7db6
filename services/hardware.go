package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Deinys/SmartHome-Backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultSeedCount is the number of demo controllers created by Populate when
// no count is given.
const DefaultSeedCount = 3

// SeedSerial formats the serial number of the i-th demo controller.
func SeedSerial(i int) string {
	return fmt.Sprintf("%04d", i)
}

// Populate registers the demo controllers 0001..count. Serials that already
// exist are left untouched, so the call is safe to repeat.
func (s *Service) Populate(ctx context.Context, count int) ([]models.Controller, error) {
	if count <= 0 {
		count = DefaultSeedCount
	}
	serials := make([]string, 0, count)
	rows := make([]models.Controller, 0, count)
	for i := 1; i <= count; i++ {
		sn := SeedSerial(i)
		serials = append(serials, sn)
		rows = append(rows, models.Controller{ControllerSN: sn})
	}

	controllers := []models.Controller{}
	err := s.transact(ctx, "populate controllers", func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "controller_sn"}},
			DoNothing: true,
		}).Create(&rows).Error
		if err != nil {
			return err
		}
		return tx.Where("controller_sn IN ?", serials).Order("id").Find(&controllers).Error
	})
	if err != nil {
		return nil, err
	}
	return controllers, nil
}

// AssignUser binds the controller with the given serial to userID. The check
// and the write are one conditional update, so two concurrent callers can
// never both succeed.
func (s *Service) AssignUser(ctx context.Context, controllerSN string, userID uint) (*models.Controller, error) {
	sn := strings.TrimSpace(controllerSN)
	if sn == "" {
		return nil, invalidInput("controller_sn is required")
	}

	var ctrl *models.Controller
	err := s.transact(ctx, "assign controller", func(tx *gorm.DB) error {
		var found models.Controller
		if err := tx.Where("controller_sn = ?", sn).First(&found).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("controller not recognized")
			}
			return err
		}
		var owner models.User
		if err := tx.First(&owner, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("user not found")
			}
			return err
		}
		bound, err := assignUser(tx, found.ID, userID)
		if err != nil {
			return err
		}
		ctrl = bound
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ctrl, nil
}

func assignUser(tx *gorm.DB, controllerID, userID uint) (*models.Controller, error) {
	res := tx.Model(&models.Controller{}).
		Where("id = ? AND user_id IS NULL", controllerID).
		Update("user_id", userID)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, conflict("user already owns a controller")
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, conflict("controller already assigned")
	}

	var ctrl models.Controller
	if err := tx.First(&ctrl, controllerID).Error; err != nil {
		return nil, err
	}
	return &ctrl, nil
}

// Validate lets a controller fetch a token for the account that owns it.
func (s *Service) Validate(ctx context.Context, controllerSN string) (string, error) {
	sn := strings.TrimSpace(controllerSN)
	if sn == "" {
		return "", invalidInput("controller_sn is required")
	}

	db := s.db.WithContext(ctx)
	var ctrl models.Controller
	err := db.Where("controller_sn = ?", sn).First(&ctrl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", notFound("controller serial number is incorrect")
	}
	if err != nil {
		return "", storageFailure("validate controller", err)
	}
	if !ctrl.Assigned() {
		return "", notFound("controller has not been registered")
	}

	var owner models.User
	err = db.First(&owner, *ctrl.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", notFound("controller has not been registered")
	}
	if err != nil {
		return "", storageFailure("validate controller", err)
	}

	token, err := s.tokens.Issue(owner.ID)
	if err != nil {
		return "", storageFailure("issue token", err)
	}
	return token, nil
}
