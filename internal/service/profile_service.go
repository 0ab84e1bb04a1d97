package service

import (
	"context"
	"errors"
	"io"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"taskdeck/internal/domain"
	"taskdeck/internal/repository"
	"taskdeck/internal/storage"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService expone lectura y edición de perfiles.
// No valida propiedad contra el llamador: los endpoints de perfil
// son públicos por id.
type ProfileService struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
	files    storage.Store
}

func NewProfileService(logger *zap.Logger, profiles repository.ProfileRepository, files storage.Store) *ProfileService {
	return &ProfileService{
		logger:   logger,
		profiles: profiles,
		files:    files,
	}
}

// Get devuelve el perfil con sus campos públicos.
func (s *ProfileService) Get(ctx context.Context, id string) (domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, ErrProfileNotFound
		}
		return domain.Profile{}, err
	}
	return profile, nil
}

type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Bio       *string
}

// Update sobreescribe solo los campos provistos; los ausentes quedan igual.
func (s *ProfileService) Update(ctx context.Context, id string, input UpdateProfileInput) error {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if input.FirstName != nil {
		profile.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		profile.LastName = *input.LastName
	}
	if input.Bio != nil {
		profile.Bio = input.Bio
	}

	return s.profiles.Update(ctx, profile)
}

// Delete borra el perfil. El usuario dueño no se borra en cascada.
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.profiles.Delete(ctx, id)
}

// SavePicture guarda la imagen subida y registra el nombre almacenado.
func (s *ProfileService) SavePicture(ctx context.Context, id, filename string, r io.Reader) (string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return "", err
	}
	stored, err := s.files.Save(ctx, filename, r)
	if err != nil {
		return "", err
	}
	if err := s.profiles.SetPicture(ctx, id, stored); err != nil {
		return "", err
	}
	return stored, nil
}
