// Package matcher scores LMS catalog candidates against local courses and
// drives match creation. Two strategies contribute candidates: a code search
// over SKUs and titles, and a fuzzy title comparison. Each candidate carries
// a confidence from 0 to 100; the auto-match driver only links a course when
// a single candidate clears the configured floor.
package matcher
