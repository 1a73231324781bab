package service

import (
	"fmt"
	"os"
	"regexp"
	"time"
)

var lastUpdatedLine = regexp.MustCompile(`\*\*Last Updated:\*\* .*`)

// Docs maintains the API documentation markdown file.
type Docs struct {
	path string
	// now is swappable for tests.
	now func() time.Time
}

func NewDocs(path string) *Docs {
	return &Docs{path: path, now: time.Now}
}

// Update rewrites the "**Last Updated:**" line of the documentation file
// with today's date and returns the date string written.
func (d *Docs) Update() (string, error) {
	content, err := os.ReadFile(d.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", d.path, err)
	}

	// Day stays zero-padded, matching the dates the file already carries.
	date := d.now().Format("January 02, 2006")
	updated := lastUpdatedLine.ReplaceAll(content, []byte("**Last Updated:** "+date))

	if err := os.WriteFile(d.path, updated, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", d.path, err)
	}
	return date, nil
}

// EndpointTemplate returns the markdown skeleton for documenting a new
// endpoint.
func EndpointTemplate() string {
	return `## New Endpoint Section

### **METHOD /api/new-endpoint**
**Description:** Brief description of what this endpoint does
**Authentication:** Required/Not required

**Request Body:**
` + "```json" + `
{
    "field1": "value1",
    "field2": "value2"
}
` + "```" + `

**Response:**
` + "```json" + `
{
    "message": "Success response",
    "data": {
        "id": "example_id",
        "status": "success"
    }
}
` + "```" + `

**Status Codes:**
- ` + "`200`" + ` - Success
- ` + "`400`" + ` - Bad Request
- ` + "`401`" + ` - Unauthorized
`
}
