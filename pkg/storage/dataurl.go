package storage

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/larlarbooks/larlar/pkg/errcodes"
	"github.com/vincent-petithory/dataurl"
)

// Blob is a decoded upload: the raw bytes plus the content type they were
// declared with.
type Blob struct {
	Data        []byte
	ContentType string
}

func IsDataURL(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "data:")
}

// DecodeDataURL decodes an RFC 2397 data URL. The declared media type wins
// over sniffing, unless the URL didn't declare one.
func DecodeDataURL(s string) (*Blob, error) {
	s = strings.TrimSpace(s)
	du, err := dataurl.DecodeString(s)
	if err != nil {
		return nil, errcodes.ValidationError("Invalid data URL format")
	}
	if len(du.Data) == 0 {
		return nil, errcodes.ValidationError("Data URL is empty")
	}
	ct := du.ContentType()
	if header, _, _ := strings.Cut(s, ","); !strings.Contains(header, "/") {
		ct = mimetype.Detect(du.Data).String()
	}
	return &Blob{Data: du.Data, ContentType: ct}, nil
}

// Extension returns the usual file extension (without the dot) for a MIME
// type, or fallback when the type is unknown.
func Extension(contentType, fallback string) string {
	m := mimetype.Lookup(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if m == nil || m.Extension() == "" {
		return fallback
	}
	return strings.TrimPrefix(m.Extension(), ".")
}
