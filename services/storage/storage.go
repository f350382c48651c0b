package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const avatarFolder = "avatars"

func avatarPublicID(userID string) string {
	return fmt.Sprintf("avatar_%s", userID)
}

// UploadAvatar uploads a profile image, overwriting any previous one for
// the same user, and returns the served URL.
func (s *CloudinaryStorageService) UploadAvatar(ctx context.Context, userID string, r io.Reader) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:    avatarFolder,
		PublicID:  avatarPublicID(userID),
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("no URL returned for uploaded avatar")
	}
	return result.SecureURL, nil
}

// DeleteAvatar removes the stored profile image for a user.
func (s *CloudinaryStorageService) DeleteAvatar(ctx context.Context, userID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: avatarFolder + "/" + avatarPublicID(userID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}
	return nil
}
