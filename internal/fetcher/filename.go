package fetcher

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// imageExtensions are the URL path extensions taken at face value.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".svg":  true,
	".ico":  true,
	".tif":  true,
	".tiff": true,
	".avif": true,
}

// contentTypeToExt maps validated content types to file extensions.
var contentTypeToExt = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/bmp":     ".bmp",
	"image/svg+xml": ".svg",
	"image/x-icon":  ".ico",
	"image/tiff":    ".tiff",
	"image/avif":    ".avif",
}

// filenameFromURL extracts a usable name from the URL's final path segment.
// Returns "" unless the sanitized segment carries a recognized image
// extension.
func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	base := sanitizeName(path.Base(u.Path))
	if base != "" && imageExtensions[strings.ToLower(path.Ext(base))] {
		return base
	}
	return ""
}

// synthesizeFilename builds image_<n> with an extension inferred from the
// validated content type. n is a run-scoped counter.
func synthesizeFilename(contentType string, n int) string {
	return fmt.Sprintf("image_%d%s", n, extensionForContentType(contentType))
}

// sanitizeName strips anything that could escape the target directory:
// path separators, parent references and leading dots.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.TrimLeft(name, ".")
	if name == "" || name == "/" {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == 0:
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func extensionForContentType(contentType string) string {
	if ext, ok := contentTypeToExt[contentType]; ok {
		return ext
	}

	// image/<subtype> falls back to .<subtype>
	if rest, ok := strings.CutPrefix(contentType, "image/"); ok && rest != "" && rest != "*" {
		return "." + strings.ToLower(rest)
	}

	return ".bin"
}

// normalizeContentType lowercases the media type and strips parameters
// such as charset.
func normalizeContentType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(strings.ToLower(contentType))
}
