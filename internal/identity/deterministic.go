package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-delivery:"

// UUID derives a stable UUID from key with go-hashid, falling back to a
// SHA-1 name based UUID when hashing fails. Keys are scoped per entity kind
// by the helpers below.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

func ArticleUUID(slug string) uuid.UUID {
	return scoped("article", slug)
}

func CategoryUUID(slug string) uuid.UUID {
	return scoped("category", slug)
}

func TagUUID(slug string) uuid.UUID {
	return scoped("tag", slug)
}

func LayoutUUID(pageKey string) uuid.UUID {
	return scoped("layout", pageKey)
}

func scoped(kind, value string) uuid.UUID {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return uuid.Nil
	}
	return UUID(namespace + kind + ":" + value)
}
