package services

import (
	"net/url"
	"strings"
)

// DefaultAvatarURL is used when a user has no photo.
const DefaultAvatarURL = "https://api.dicebear.com/7.x/avataaars/svg"

// legacyPhotoPrefix appears on photo keys written by older backends; the
// image host serves those files from its root.
const legacyPhotoPrefix = "Fotos_Publicadas/"

// ImageURL resolves an artwork image reference against base. Absolute URLs
// pass through; an empty ref yields "".
func ImageURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}

// ProfileImageURL resolves a user's photo key, falling back to a generated
// avatar seeded with the username.
func ProfileImageURL(base, photo, username string) string {
	if photo == "" {
		return DefaultAvatar(username)
	}
	return ImageURL(base, strings.TrimPrefix(photo, legacyPhotoPrefix))
}

func DefaultAvatar(seed string) string {
	if seed == "" {
		seed = "default"
	}
	return DefaultAvatarURL + "?seed=" + url.QueryEscape(seed) + "&backgroundColor=b6e3f4"
}
