// Package pagecrawler crawls a single website from a seed URL and extracts
// readable body text from every page it reaches, discarding navigation,
// header, footer and other boilerplate markup.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package pagecrawler
