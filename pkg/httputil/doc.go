// Package httputil provides HTTP helpers shared by external API clients.
//
// The only external service the badge pipeline calls is the geocoder; this
// package supplies the retry-with-backoff primitive its client uses to
// absorb transient network failures. Only errors wrapped in
// [RetryableError] are retried so that "no result" responses are never
// confused with "try again later" responses.
package httputil
