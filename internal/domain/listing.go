package domain

// Canonical listing field names. The factory iterates this registry instead
// of reflecting over the struct, so the mapped field set is explicit.
const (
	FieldExternalID  = "external_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldJobLevel    = "job_level"
)

// ListingFields is the ordered registry of canonical fields the factory maps,
// excluding the id which is always assigned by the caller.
var ListingFields = []string{
	FieldExternalID,
	FieldTitle,
	FieldDescription,
	FieldJobLevel,
}

// Listing is the canonical, provider-independent view of one job listing.
// All fields other than ID are best-effort: they stay empty when the
// provider record did not carry them.
type Listing struct {
	ID          string `json:"id"`
	ExternalID  string `json:"external_id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	JobLevel    string `json:"job_level,omitempty"`
}

// SetField assigns a canonical field by name. Unknown names are ignored.
func (l *Listing) SetField(name, value string) {
	switch name {
	case FieldExternalID:
		l.ExternalID = value
	case FieldTitle:
		l.Title = value
	case FieldDescription:
		l.Description = value
	case FieldJobLevel:
		l.JobLevel = value
	}
}

// Field returns a canonical field by name and whether the name is known.
func (l *Listing) Field(name string) (string, bool) {
	switch name {
	case FieldExternalID:
		return l.ExternalID, true
	case FieldTitle:
		return l.Title, true
	case FieldDescription:
		return l.Description, true
	case FieldJobLevel:
		return l.JobLevel, true
	}
	return "", false
}
