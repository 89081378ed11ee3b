package extract

import "encoding/json"

// Field is an optional extracted value. Found is false when no node matched
// the field's rule; Value is then always empty.
type Field struct {
	Value string
	Found bool
}

// Some returns a found field holding v.
func Some(v string) Field { return Field{Value: v, Found: true} }

func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Found {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func (f *Field) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Field{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*f = Some(s)
	return nil
}

// Record is one certificate entry extracted from a list item.
type Record struct {
	Name         Field `json:"name"`
	Link         Field `json:"link"`
	Organization Field `json:"organization"`
	IssueDate    Field `json:"issue_date"`
	// Err carries the diagnostic when the fragment could not be read at all.
	Err string `json:"error,omitempty"`
}

// Valid reports whether the record has a non-empty name. Only valid records
// are written to outputs; the other fields may be absent.
func (r Record) Valid() bool {
	return r.Name.Found && r.Name.Value != ""
}

// Columns is the fixed output column order.
var Columns = []string{string(ColName), string(ColLink), string(ColOrganization), string(ColIssueDate)}

// Row returns the record values in Columns order. Absent fields become "".
func (r Record) Row() []string {
	return []string{r.Name.Value, r.Link.Value, r.Organization.Value, r.IssueDate.Value}
}
