package domain

import (
	"path/filepath"
	"strings"
)

// ContentType classifies a stored content object by what it holds.
type ContentType string

const (
	ContentTypeWSI       ContentType = "wsi"
	ContentTypeTile      ContentType = "tile"
	ContentTypeThumbnail ContentType = "thumbnail"
	ContentTypeArchive   ContentType = "archive"
	ContentTypeDocument  ContentType = "document"
	ContentTypeBinary    ContentType = "binary"
)

// ContentCategory is the coarse grouping used for display and filtering.
type ContentCategory string

const (
	ContentCategoryImage    ContentCategory = "image"
	ContentCategoryArchive  ContentCategory = "archive"
	ContentCategoryDocument ContentCategory = "document"
	ContentCategoryOther    ContentCategory = "other"
)

func (c ContentType) String() string { return string(c) }

func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeWSI, ContentTypeTile, ContentTypeThumbnail,
		ContentTypeArchive, ContentTypeDocument, ContentTypeBinary:
		return true
	}
	return false
}

// ContentTypeFromString parses a raw content-type string. Unrecognized input
// returns the zero value and false.
func ContentTypeFromString(raw string) (ContentType, bool) {
	c := ContentType(raw)
	return c, c.IsValid()
}

// AllContentTypes returns every content type in declaration order.
func AllContentTypes() []ContentType {
	return []ContentType{
		ContentTypeWSI, ContentTypeTile, ContentTypeThumbnail,
		ContentTypeArchive, ContentTypeDocument, ContentTypeBinary,
	}
}

// Category maps each content type onto its coarse grouping.
func (c ContentType) Category() ContentCategory {
	switch c {
	case ContentTypeWSI, ContentTypeTile, ContentTypeThumbnail:
		return ContentCategoryImage
	case ContentTypeArchive:
		return ContentCategoryArchive
	case ContentTypeDocument:
		return ContentCategoryDocument
	default:
		return ContentCategoryOther
	}
}

// MIME returns the transfer MIME type. Unmapped types fall back to
// application/octet-stream.
func (c ContentType) MIME() string {
	switch c {
	case ContentTypeWSI:
		return "image/tiff"
	case ContentTypeTile, ContentTypeThumbnail:
		return "image/jpeg"
	case ContentTypeArchive:
		return "application/zip"
	case ContentTypeDocument:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// contentTypeByExtension is the fixed filename-extension inference table.
// Extensions are lowercase and include the leading dot.
var contentTypeByExtension = map[string]ContentType{
	".svs":  ContentTypeWSI,
	".tif":  ContentTypeWSI,
	".tiff": ContentTypeWSI,
	".ndpi": ContentTypeWSI,
	".mrxs": ContentTypeWSI,
	".scn":  ContentTypeWSI,
	".jpg":  ContentTypeTile,
	".jpeg": ContentTypeTile,
	".png":  ContentTypeThumbnail,
	".zip":  ContentTypeArchive,
	".tar":  ContentTypeArchive,
	".gz":   ContentTypeArchive,
	".pdf":  ContentTypeDocument,
	".txt":  ContentTypeDocument,
	".csv":  ContentTypeDocument,
	".json": ContentTypeDocument,
}

// ContentTypeFromFilename infers a content type from the file extension.
// Unmapped extensions resolve to ContentTypeBinary.
func ContentTypeFromFilename(name string) ContentType {
	ext := strings.ToLower(filepath.Ext(name))
	if c, ok := contentTypeByExtension[ext]; ok {
		return c
	}
	return ContentTypeBinary
}
