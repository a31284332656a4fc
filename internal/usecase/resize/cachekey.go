package resize

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
)

const (
	cacheHashLength = 9
	// fallbackExtension is used for sources whose format can be decoded but
	// not encoded, such as webp.
	fallbackExtension = "png"
)

var encodableExtensions = []string{"jpg", "jpeg", "png", "gif", "tif", "tiff", "bmp"}

// CacheKey holds everything the cache path of a resized image depends on.
type CacheKey struct {
	SourcePath      string
	CacheDir        string
	ModTime         int64
	CoordinatesHash string
	EncoderOptions  valueobject.EncoderOptions
}

// Path returns the cache path relative to the cache directory:
// <h>/<basename>-<8 hex>.<ext>.
func (k CacheKey) Path() string {
	keys := make([]string, 0, len(k.EncoderOptions))
	for key := range k.EncoderOptions {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	parts := []string{
		relativeSource(k.SourcePath, k.CacheDir),
		strconv.FormatInt(k.ModTime, 10),
		k.CoordinatesHash,
	}
	parts = append(parts, keys...)
	for _, key := range keys {
		parts = append(parts, flattenOption(k.EncoderOptions[key]))
	}

	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	hash := hex.EncodeToString(sum[:])[:cacheHashLength]

	base := filepath.Base(k.SourcePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	extension := k.EncoderOptions.Format()
	if extension == "" {
		extension = outputExtension(strings.ToLower(strings.TrimPrefix(ext, ".")))
	}

	return filepath.Join(hash[:1], name+"-"+hash[1:]+"."+extension)
}

func outputExtension(ext string) string {
	if slices.Contains(encodableExtensions, ext) {
		return ext
	}
	return fallbackExtension
}

func relativeSource(source, cacheDir string) string {
	rel, err := filepath.Rel(cacheDir, source)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(source))
	}
	return filepath.ToSlash(rel)
}

func flattenOption(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "1"
		}
		return ""
	case int:
		return strconv.Itoa(val)
	case []string:
		return strings.Join(val, ",")
	case []int:
		s := make([]string, len(val))
		for i, n := range val {
			s[i] = strconv.Itoa(n)
		}
		return strings.Join(s, ",")
	case []any:
		s := make([]string, len(val))
		for i, item := range val {
			s[i] = flattenOption(item)
		}
		return strings.Join(s, ",")
	default:
		return fmt.Sprint(val)
	}
}
