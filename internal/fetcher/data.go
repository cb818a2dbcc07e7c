package fetcher

import (
	"net/url"
)

// FetchParam names the page to load. Besides http(s), file URLs are read
// from disk.
type FetchParam struct {
	pageURL   url.URL
	userAgent string
}

func NewFetchParam(pageURL url.URL, userAgent string) FetchParam {
	return FetchParam{
		pageURL:   pageURL,
		userAgent: userAgent,
	}
}

// FetchResult is the raw markup of one page together with where it ended up.
type FetchResult struct {
	requestedURL url.URL
	finalURL     url.URL
	markup       []byte
	statusCode   int
	contentType  string
	local        bool
}

func (f *FetchResult) RequestedURL() url.URL {
	return f.requestedURL
}

// FinalURL differs from RequestedURL when the server redirected.
func (f *FetchResult) FinalURL() url.URL {
	return f.finalURL
}

func (f *FetchResult) Body() []byte {
	return f.markup
}

// Code is zero for local files.
func (f *FetchResult) Code() int {
	return f.statusCode
}

func (f *FetchResult) ContentType() string {
	return f.contentType
}

func (f *FetchResult) Local() bool {
	return f.local
}

func (f *FetchResult) Redirected() bool {
	return f.requestedURL.String() != f.finalURL.String()
}
