package normalize

// RawListing is the site parsers' output: field values as they appear on
// the page (usually Japanese), before translation and currency conversion.
type RawListing struct {
	Site       string
	SourceURL  string
	Prefecture string

	// Fields is keyed by canonical field name (see fields.go). A field the
	// page does not have is simply absent.
	Fields map[string]string

	ImageURLs     []string
	ContactNumber string
	ReferenceURL  string
}

// NewRawListing creates an empty raw listing for one source page.
func NewRawListing(site, sourceURL string) RawListing {
	return RawListing{
		Site:      site,
		SourceURL: sourceURL,
		Fields:    make(map[string]string),
	}
}

// SetField records a field value, ignoring empty strings so that missing
// page elements never produce empty-but-present fields.
func (r *RawListing) SetField(name, value string) {
	if name == "" || value == "" {
		return
	}
	r.Fields[name] = value
}

// Field returns the raw value for a canonical field name, or "".
func (r *RawListing) Field(name string) string {
	return r.Fields[name]
}
