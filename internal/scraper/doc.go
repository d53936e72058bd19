// Package scraper turns a web page into the raw bundle the extractor works on:
// title, rendered body text, URL and the short text fragments of elements
// whose class or id suggests a deadline or date.
//
// Pages are fetched with colly or read from a local file and parsed with goquery.
package scraper
