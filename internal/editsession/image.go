package editsession

import "slices"

// PendingImage is a staged logo replacement. Bytes and PreviewURL always come
// from the same selected file.
type PendingImage struct {
	Bytes      []byte
	PreviewURL string
}

func (p PendingImage) clone() PendingImage {
	return PendingImage{Bytes: slices.Clone(p.Bytes), PreviewURL: p.PreviewURL}
}
