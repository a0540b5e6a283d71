package tiles

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// Token computes the cache validation token for a tile from its storage path
// and modification time. Same path and mtime always yield the same token; any
// mtime change yields a different one. md5 is used as a fingerprint, not for
// security.
func Token(path string, modTime time.Time) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s%d", path, modTime.UnixNano())))
	return hex.EncodeToString(sum[:])
}

// Unchanged reports whether the client-supplied conditional token matches the
// current token. Comparison is byte-exact; an absent client token never
// matches.
func Unchanged(requestToken, currentToken string) bool {
	return requestToken != "" && requestToken == currentToken
}
