// Package bootstrap siembra los datos mínimos que el resto del sistema da
// por existentes: la ubicación de stock canónica, la cuenta de efectivo
// canónica y el usuario administrador. La siembra es idempotente y corre en
// cada arranque antes de aceptar tráfico.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
	"github.com/jhoicas/Deme-api/pkg/config"
	"github.com/jhoicas/Deme-api/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// seedUserID sello de auditoría de las entidades sembradas.
const seedUserID = "system"

// Seeder asegura las entidades singleton en el arranque.
type Seeder struct {
	users     repository.UserRepository
	locations repository.StockLocationRepository
	accounts  repository.CashAccountRepository
	company   config.CompanyConfig
	admin     config.AdminConfig
	log       *logger.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(
	users repository.UserRepository,
	locations repository.StockLocationRepository,
	accounts repository.CashAccountRepository,
	company config.CompanyConfig,
	admin config.AdminConfig,
	log *logger.Logger,
) *Seeder {
	return &Seeder{
		users:     users,
		locations: locations,
		accounts:  accounts,
		company:   company,
		admin:     admin,
		log:       log,
	}
}

// Run siembra lo que falte. Las entidades ya presentes no se tocan.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.ensureLocation(); err != nil {
		return err
	}
	if err := s.ensureAccount(); err != nil {
		return err
	}
	return s.ensureAdmin()
}

func (s *Seeder) ensureLocation() error {
	location, err := s.locations.GetByName(s.company.StockLocationName)
	if err != nil {
		return err
	}
	if location != nil {
		return nil
	}
	now := time.Now().UTC()
	err = s.locations.Create(&entity.StockLocation{
		ID:   uuid.New().String(),
		Name: s.company.StockLocationName,
		Audit: entity.Audit{
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: seedUserID,
			UpdatedBy: seedUserID,
		},
	})
	if err != nil {
		return fmt.Errorf("sembrando ubicación canónica: %w", err)
	}
	s.log.Info().Str("name", s.company.StockLocationName).Msg("ubicación de stock canónica creada")
	return nil
}

func (s *Seeder) ensureAccount() error {
	account, err := s.accounts.GetByName(s.company.CashAccountName)
	if err != nil {
		return err
	}
	if account != nil {
		return nil
	}
	now := time.Now().UTC()
	err = s.accounts.Create(&entity.CashAccount{
		ID:        uuid.New().String(),
		Name:      s.company.CashAccountName,
		Balance:   decimal.Zero,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
		UpdatedBy: seedUserID,
	})
	if err != nil {
		return fmt.Errorf("sembrando cuenta canónica: %w", err)
	}
	s.log.Info().Str("name", s.company.CashAccountName).Msg("cuenta de efectivo canónica creada")
	return nil
}

func (s *Seeder) ensureAdmin() error {
	if s.admin.Password == "" {
		s.log.Warn().Msg("ADMIN_PASSWORD no definido; se omite la siembra del administrador")
		return nil
	}
	user, err := s.users.GetByUsername(s.admin.Username)
	if err != nil {
		return err
	}
	if user != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash del password admin: %w", err)
	}
	now := time.Now().UTC()
	err = s.users.Create(&entity.User{
		ID:           uuid.New().String(),
		Username:     s.admin.Username,
		Email:        s.admin.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Audit: entity.Audit{
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: seedUserID,
			UpdatedBy: seedUserID,
		},
	})
	if err != nil {
		return fmt.Errorf("sembrando usuario admin: %w", err)
	}
	s.log.Info().Str("username", s.admin.Username).Msg("usuario administrador creado")
	return nil
}
