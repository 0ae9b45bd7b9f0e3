package media

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/application/service"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/profile"
)

const avatarFolder = "avatars"

type UploadAvatarUseCase struct {
	uploader    service.Uploader
	profileRepo profile.Repository
}

func NewUploadAvatarUseCase(uploader service.Uploader, profileRepo profile.Repository) *UploadAvatarUseCase {
	return &UploadAvatarUseCase{
		uploader:    uploader,
		profileRepo: profileRepo,
	}
}

type UploadAvatarInput struct {
	OwnerID uuid.UUID
	File    io.Reader
}

type UploadAvatarOutput struct {
	AvatarURL string
}

// Execute pushes the image to the media backend under a stable per-user
// public id, so re-uploading replaces the previous avatar.
func (uc *UploadAvatarUseCase) Execute(ctx context.Context, input UploadAvatarInput) (*UploadAvatarOutput, error) {
	url, err := uc.uploader.Upload(ctx, input.File, avatarFolder, input.OwnerID.String())
	if err != nil {
		return nil, fmt.Errorf("upload avatar failed: %w", err)
	}

	if err := uc.profileRepo.SetAvatarURL(ctx, input.OwnerID, url); err != nil {
		return nil, err
	}
	return &UploadAvatarOutput{AvatarURL: url}, nil
}
