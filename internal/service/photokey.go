package service

import (
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// PhotoURLPrefix is the retrieval path under which uploaded photos are served.
const PhotoURLPrefix = "/api/user/profile/photo/"

var (
	photoNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://fitme.app/profile-photos"))

	photoExtPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)
	photoKeyPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}(\.[a-z0-9]{1,8})?$`)
)

// PhotoKey derives the storage key for an upload. The key is a name-based
// UUID over (email, original base name), so it is stable for repeat uploads
// of the same file name, distinct across accounts, and never contains path
// segments supplied by the client. A short alphanumeric extension is kept.
func PhotoKey(email, originalName string) string {
	name := path.Base(strings.ReplaceAll(originalName, `\`, "/"))
	id := uuid.NewSHA1(photoNamespace, []byte(email+"\x00"+name))

	ext := strings.ToLower(path.Ext(name))
	if !photoExtPattern.MatchString(ext) {
		ext = ""
	}
	return id.String() + ext
}

// ValidPhotoKey reports whether key has the shape produced by PhotoKey.
func ValidPhotoKey(key string) bool {
	return photoKeyPattern.MatchString(key)
}
