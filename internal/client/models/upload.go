// Package models defines client-side data models that are not part of the
// REST contract.
package models

// PendingUpload is a local image chosen for upload. It lives until its
// storage key is attached to a request, or until the upload fails.
type PendingUpload struct {
	// Path is the local file the bytes were read from.
	Path string
	// Data holds the file contents, read once.
	Data []byte
	// ContentType is the detected MIME type, without parameters.
	ContentType string
	// Folder is the object-store prefix the file goes to.
	Folder string
	// Filename is the generated object name, set when the upload starts.
	Filename string
}

func (p *PendingUpload) Size() int64 {
	return int64(len(p.Data))
}
