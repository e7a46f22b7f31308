package order

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"repairdesk/internal/pkg/errs"
)

// Attachment is a reference to a file held by the attachment store.
// The order keeps the reference only, never the bytes.
type Attachment struct {
	name string
	url  string
}

// NewAttachment validates that url is absolute.
func NewAttachment(name, rawURL string) (Attachment, error) {
	name = strings.TrimSpace(name)
	rawURL = strings.TrimSpace(rawURL)

	var problems []error
	if name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("attachment name"))
	}
	if u, err := url.Parse(rawURL); err != nil || !u.IsAbs() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("attachment url", fmt.Errorf("%q is not an absolute URL", rawURL)))
	}
	if err := errors.Join(problems...); err != nil {
		return Attachment{}, err
	}

	return Attachment{name: name, url: rawURL}, nil
}

func (a Attachment) Name() string { return a.name }
func (a Attachment) URL() string  { return a.url }
