// Package unfurl extracts link-preview metadata from web pages: title,
// description, keywords, images, language, raw meta tags and hyperlinks.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, html/, sqlite/).
package unfurl
