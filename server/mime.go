package server

import (
	"mime"
	"path/filepath"
)

// Extension registrations beyond what the platform mime database is
// guaranteed to carry. Keyed by extension including the dot.
var extraMimeTypes = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".txt":  "text/plain",
	".xml":  "application/xml",
	".csv":  "text/csv",

	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".ico":  "image/x-icon",

	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",

	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
	".webm": "video/webm",

	".pdf": "application/pdf",
	".zip": "application/zip",
	".gz":  "application/gzip",
}

func init() {
	for ext, typ := range extraMimeTypes {
		mime.AddExtensionType(ext, typ)
	}
}

// contentTypeFor infers the Content-Type for a resolved file path,
// falling back to application/octet-stream.
func contentTypeFor(filePath string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filePath)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
