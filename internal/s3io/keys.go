package s3io

import "strings"

// ContentTypeJPEG is the content type written for derived thumbnails.
const ContentTypeJPEG = "image/jpeg"

// thumbPrefix is the key prefix under which derived thumbnails are stored.
const thumbPrefix = "processed/thumb_"

// ThumbKey derives the destination key for a thumbnail of the given source
// key: the basename of the key (everything after the last '/') prefixed with
// processed/thumb_.
func ThumbKey(key string) string {
	return thumbPrefix + basename(key)
}

// basename strips any path prefix up to and including the last separator.
func basename(key string) string {
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		return key[i+1:]
	}
	return key
}
