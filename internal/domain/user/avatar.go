package user

import (
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// AvatarPart is the multipart field the API reads avatars from.
const AvatarPart = "img"

// AvatarFile returns a unique file name and the MIME type detected from data.
func AvatarFile(data []byte) (name, mime string) {
	mt := mimetype.Detect(data)
	return uuid.NewString() + mt.Extension(), mt.String()
}
