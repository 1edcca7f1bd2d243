package api

import (
	"strings"
	"time"
)

// Image is a photo record as returned by the Unsplash API. Only the fields
// pixgrid reads are decoded; the record is otherwise treated as read-only.
type Image struct {
	ID             string  `json:"id" yaml:"id"`
	Description    *string `json:"description" yaml:"description,omitempty"`
	AltDescription *string `json:"alt_description" yaml:"alt_description,omitempty"`
	URLs           URLs    `json:"urls" yaml:"urls"`
	Width          int     `json:"width" yaml:"width"`
	Height         int     `json:"height" yaml:"height"`
	CreatedAt      string  `json:"created_at" yaml:"created_at"`
	User           User    `json:"user" yaml:"user"`
	Tags           []Tag   `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// URLs holds the rendition links of a photo.
type URLs struct {
	Small   string `json:"small" yaml:"small"`
	Thumb   string `json:"thumb,omitempty" yaml:"thumb,omitempty"`
	Regular string `json:"regular,omitempty" yaml:"regular,omitempty"`
}

// User is the photographer credited for a photo.
type User struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
}

// Tag is a single keyword attached to a photo.
type Tag struct {
	Title string `json:"title" yaml:"title"`
}

// Area returns width times height, the key used for size ordering.
func (i Image) Area() int64 {
	return int64(i.Width) * int64(i.Height)
}

// CreatedTime parses CreatedAt. Values that do not parse yield the zero
// time, which places the image last in newest-first ordering.
func (i Image) CreatedTime() time.Time {
	if i.CreatedAt == "" {
		return time.Time{}
	}

	if t, err := time.Parse(time.RFC3339, i.CreatedAt); err == nil {
		return t
	}

	// Date-only values appear in fixtures and hand-written data.
	if t, err := time.Parse("2006-01-02", i.CreatedAt); err == nil {
		return t
	}

	return time.Time{}
}

// TitleWord returns the first whitespace-delimited word of the description,
// or the empty string when there is no description.
func (i Image) TitleWord() string {
	if i.Description == nil {
		return ""
	}

	fields := strings.Fields(*i.Description)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

// AltText returns the alt description, falling back to the description.
func (i Image) AltText() string {
	if i.AltDescription != nil && *i.AltDescription != "" {
		return *i.AltDescription
	}

	if i.Description != nil {
		return *i.Description
	}

	return ""
}

// DescriptionText returns the description or the empty string.
func (i Image) DescriptionText() string {
	if i.Description == nil {
		return ""
	}

	return *i.Description
}

// TagTitles returns the tag titles in order.
func (i Image) TagTitles() []string {
	titles := make([]string, 0, len(i.Tags))
	for _, tag := range i.Tags {
		titles = append(titles, tag.Title)
	}

	return titles
}

// StringPtr returns a pointer to s. It is a convenience for building images
// in code.
func StringPtr(s string) *string {
	return &s
}
