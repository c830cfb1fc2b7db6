package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Deinys/SmartHome-Backend/models"
	"github.com/Deinys/SmartHome-Backend/utils"
	"gorm.io/gorm"
)

// NewUser validates a registration and persists the user. It does not bind
// the controller; Signup does both atomically.
func (s *Service) NewUser(ctx context.Context, in models.SignupRequest) (*models.User, error) {
	var user *models.User
	err := s.transact(ctx, "create user", func(tx *gorm.DB) error {
		u, _, err := newUser(tx, in)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Signup creates the user and binds the requested controller in one
// transaction. If the binding loses a race the user row is rolled back too.
func (s *Service) Signup(ctx context.Context, in models.SignupRequest) (*models.User, *models.Controller, error) {
	var (
		user *models.User
		ctrl *models.Controller
	)
	err := s.transact(ctx, "signup", func(tx *gorm.DB) error {
		u, c, err := newUser(tx, in)
		if err != nil {
			return err
		}
		bound, err := assignUser(tx, c.ID, u.ID)
		if err != nil {
			return err
		}
		user, ctrl = u, bound
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return user, ctrl, nil
}

func newUser(tx *gorm.DB, in models.SignupRequest) (*models.User, *models.Controller, error) {
	name := strings.TrimSpace(in.Name)
	sn := strings.TrimSpace(in.ControllerSN)
	if name == "" || in.Password == "" || sn == "" {
		return nil, nil, invalidInput("received an incomplete request")
	}
	if len(in.Password) > utils.MaxPasswordBytes {
		return nil, nil, invalidInput("password is too long")
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, nil, err
	}

	var taken int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&taken).Error; err != nil {
		return nil, nil, err
	}
	if taken > 0 {
		return nil, nil, conflict("user already exists")
	}

	var ctrl models.Controller
	err = tx.Where("controller_sn = ?", sn).First(&ctrl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, notFound("controller not recognized")
	}
	if err != nil {
		return nil, nil, err
	}
	if ctrl.Assigned() {
		return nil, nil, conflict("controller already assigned")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}
	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Image:    models.DefaultImage,
	}
	if err := tx.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, conflict("user already exists")
		}
		return nil, nil, err
	}
	return &user, &ctrl, nil
}

var (
	checkPassword = utils.CheckPassword

	// dummyHash is compared against when the email is not registered.
	dummyHash = sync.OnceValue(func() string {
		hash, _ := utils.HashPassword("smarthome-unknown-user")
		return hash
	})
)

// Login checks the credentials and issues a bearer token for the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	addr := strings.ToLower(strings.TrimSpace(email))
	if addr == "" || password == "" {
		return "", nil, invalidInput("received an incomplete request")
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", addr).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Unknown emails pay for a hash comparison too.
		checkPassword(dummyHash(), password)
		return "", nil, unauthorized("incorrect email or password")
	}
	if err != nil {
		return "", nil, storageFailure("login", err)
	}
	if !checkPassword(user.Password, password) {
		return "", nil, unauthorized("incorrect email or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, storageFailure("issue token", err)
	}
	return token, &user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, storageFailure("list users", err)
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user not found")
	}
	if err != nil {
		return nil, storageFailure("get user", err)
	}
	return &user, nil
}

// UpdateEmail changes the email of user id. The new address must not belong
// to another account.
func (s *Service) UpdateEmail(ctx context.Context, id uint, rawEmail string) (*models.User, error) {
	email, err := normalizeEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.transact(ctx, "update user", func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("user not found")
			}
			return err
		}
		if user.Email == email {
			return nil
		}
		var taken int64
		if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return conflict("email already registered")
		}
		if err := tx.Model(&user).Update("email", email).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("email already registered")
			}
			return err
		}
		user.Email = email
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the account together with its entries and releases the
// controller it owned, so the serial can be registered again.
func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	return s.transact(ctx, "delete user", func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("user not found")
			}
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Entry{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Controller{}).Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
