package blobkit

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// Common MIME types
const (
	MIMETypeTextPlain       = "text/plain"
	MIMETypeTextHTML        = "text/html"
	MIMETypeTextCSS         = "text/css"
	MIMETypeApplicationJSON = "application/json"
	MIMETypeApplicationXML  = "application/xml"
	MIMETypeImageJPEG       = "image/jpeg"
	MIMETypeImagePNG        = "image/png"
	MIMETypeImageGIF        = "image/gif"
	MIMETypeImageSVG        = "image/svg+xml"
	MIMETypeImageWebP       = "image/webp"
	MIMETypeAudioMP3        = "audio/mpeg"
	MIMETypeVideoMP4        = "video/mp4"
	MIMETypeApplicationPDF  = "application/pdf"
	MIMETypeApplicationZip  = "application/zip"
)

// Common file extensions to MIME types mapping
var extensionToMIME = map[string]string{
	".txt":  MIMETypeTextPlain,
	".html": MIMETypeTextHTML,
	".htm":  MIMETypeTextHTML,
	".css":  MIMETypeTextCSS,
	".js":   "text/javascript",
	".json": MIMETypeApplicationJSON,
	".xml":  MIMETypeApplicationXML,
	".jpg":  MIMETypeImageJPEG,
	".jpeg": MIMETypeImageJPEG,
	".png":  MIMETypeImagePNG,
	".gif":  MIMETypeImageGIF,
	".svg":  MIMETypeImageSVG,
	".webp": MIMETypeImageWebP,
	".mp3":  MIMETypeAudioMP3,
	".mp4":  MIMETypeVideoMP4,
	".webm": "video/webm",
	".pdf":  MIMETypeApplicationPDF,
	".zip":  MIMETypeApplicationZip,
	".gz":   "application/gzip",
	".tar":  "application/x-tar",
	".csv":  "text/csv",
	".md":   "text/markdown",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// GuessContentType determines the content type of a blob from its file name
// and, when available, its leading bytes.
func GuessContentType(filePath string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	if contentType, ok := extensionToMIME[ext]; ok {
		return contentType
	}

	// Detect from content when the extension is unknown
	if len(data) > 0 {
		return http.DetectContentType(data)
	}

	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}

	return "application/octet-stream"
}
