package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-booking/internal/auth"
	"github.com/spec-kit/hospital-booking/internal/config"
	"github.com/spec-kit/hospital-booking/internal/domain"
	"github.com/spec-kit/hospital-booking/internal/repository"
)

// SeedData bootstraps the admin account and, when the practitioners table is
// empty, a starter set of practitioner profiles.
func SeedData(ctx context.Context, cfg config.Config, accounts repository.AccountRepository, practitioners repository.PractitionerRepository, logger *zap.Logger) error {
	if err := ensureAdmin(ctx, cfg, accounts, logger); err != nil {
		return err
	}
	return ensurePractitioners(ctx, practitioners, logger)
}

func ensureAdmin(ctx context.Context, cfg config.Config, accounts repository.AccountRepository, logger *zap.Logger) error {
	_, err := accounts.GetByEmail(ctx, cfg.Seed.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.Account{
		Name:         cfg.Seed.AdminName,
		Email:        cfg.Seed.AdminEmail,
		Phone:        cfg.Seed.AdminPhone,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := accounts.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("seeded admin account", zap.String("email", admin.Email))
	return nil
}

func ensurePractitioners(ctx context.Context, practitioners repository.PractitionerRepository, logger *zap.Logger) error {
	count, err := practitioners.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	starter := []domain.Practitioner{
		{
			Name:            "Dr. Birendra Sharma",
			Specialty:       "Cardiologist",
			Email:           "birendrasha444@gmail.com",
			Phone:           "9841234567",
			Qualification:   "MD, DM (Cardiology)",
			ExperienceYears: 15,
			AvailableDays:   []string{"Mon", "Wed", "Fri"},
			AvailableTime:   "9:00 AM - 5:00 PM",
		},
		{
			Name:            "Dr. Bishal Regmi",
			Specialty:       "Gynecologist",
			Email:           "bishalregmi180@gmail.com",
			Phone:           "9841234568",
			Qualification:   "MD (Gynecology)",
			ExperienceYears: 10,
			AvailableDays:   []string{"Tue", "Thu", "Sat"},
			AvailableTime:   "10:00 AM - 4:00 PM",
		},
		{
			Name:            "Dr. Anuj Thapa",
			Specialty:       "Ophthalmologist",
			Email:           "anujth345@gmail.com",
			Phone:           "9841234569",
			Qualification:   "MS (Ophthalmology)",
			ExperienceYears: 8,
			AvailableDays:   []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
			AvailableTime:   "8:00 AM - 3:00 PM",
		},
		{
			Name:            "Dr. Biswas Kafle",
			Specialty:       "Otolaryngologist",
			Email:           "biswaskafle@gmail.com",
			Phone:           "9841234570",
			Qualification:   "MS (ENT)",
			ExperienceYears: 12,
			AvailableDays:   []string{"Mon", "Wed", "Fri", "Sat"},
			AvailableTime:   "11:00 AM - 6:00 PM",
		},
	}

	for i := range starter {
		if err := practitioners.Create(ctx, &starter[i]); err != nil {
			return err
		}
	}
	logger.Info("seeded practitioners", zap.Int("count", len(starter)))
	return nil
}
