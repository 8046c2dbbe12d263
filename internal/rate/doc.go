// Package rate implements the fixed-window throttle applied to
// credential routes. Counters live in Redis keyed per identifier and,
// optionally, per source address, so multiple instances of the service
// share one budget.
package rate
