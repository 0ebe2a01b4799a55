// Package scraper implements the parser modes. Each routine fetches an
// index page from the Python documentation or the PEP site, walks it with
// htmlutil and assembles a results.Table.
//
// A page that fails to load is skipped; a missing structural tag aborts
// the routine with *htmlutil.TagNotFoundError.
package scraper
