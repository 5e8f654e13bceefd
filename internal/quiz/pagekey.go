package quiz

import (
	"errors"
	"net/url"
	"strings"
)

var ErrPageKeyUndetectable = errors.New("page key undetectable")

const (
	DefaultMarker   = "pages"
	DefaultSuffix   = ".html"
	DefaultBankFile = "mcq-data.json"
)

// PageLocator maps content locations to page keys and to the bank location.
type PageLocator struct {
	Marker   string
	Suffix   string
	BankFile string
}

func DefaultLocator() PageLocator {
	return PageLocator{Marker: DefaultMarker, Suffix: DefaultSuffix, BankFile: DefaultBankFile}
}

func (l PageLocator) withDefaults() PageLocator {
	if strings.TrimSpace(l.Marker) == "" {
		l.Marker = DefaultMarker
	}
	l.Marker = strings.Trim(l.Marker, "/")
	if l.Suffix == "" {
		l.Suffix = DefaultSuffix
	}
	if l.BankFile == "" {
		l.BankFile = DefaultBankFile
	}
	return l
}

// PageKey derives the page key from a content location (absolute URL or path). The part
// after the marker segment keeps its case and is URL-decoded; the suffix is appended when
// missing.
func (l PageLocator) PageKey(location string) (string, error) {
	l = l.withDefaults()
	path := locationPath(location)

	segment := "/" + l.Marker + "/"
	if idx := strings.Index(strings.ToLower(path), strings.ToLower(segment)); idx != -1 {
		return l.finishKey(path[idx+len(segment):])
	}

	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	for idx := 0; idx < len(parts)-1; idx++ {
		if strings.EqualFold(parts[idx], l.Marker) {
			return l.finishKey(strings.Join(parts[idx+1:], "/"))
		}
	}

	return "", ErrPageKeyUndetectable
}

func (l PageLocator) finishKey(relative string) (string, error) {
	decoded, err := url.PathUnescape(relative)
	if err != nil {
		return "", errors.Join(ErrPageKeyUndetectable, err)
	}
	if decoded == "" || strings.HasSuffix(decoded, "/") {
		return "", ErrPageKeyUndetectable
	}
	if !strings.HasSuffix(strings.ToLower(decoded), strings.ToLower(l.Suffix)) {
		decoded += l.Suffix
	}
	return decoded, nil
}

// BankLocation returns where the bank lives for a page: the location cut right after the
// marker segment plus the bank file name, or <origin>/<marker>/<bank file> when the
// location has no marker.
func (l PageLocator) BankLocation(location string) string {
	l = l.withDefaults()
	segment := "/" + l.Marker + "/"

	if idx := strings.Index(strings.ToLower(location), strings.ToLower(segment)); idx != -1 {
		return location[:idx+len(segment)] + l.BankFile
	}

	origin := ""
	if parsed, err := url.Parse(location); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		origin = parsed.Scheme + "://" + parsed.Host
	}
	return origin + segment + l.BankFile
}

func locationPath(location string) string {
	parsed, err := url.Parse(location)
	if err != nil {
		return location
	}
	if parsed.RawPath != "" {
		return parsed.RawPath
	}
	return parsed.EscapedPath()
}
