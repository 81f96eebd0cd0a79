// Package metrics implements a small dependency-free counter and gauge
// registry with Prometheus text exposition. The server exposes it at
// /metrics; nothing here scrapes or ships anywhere.
package metrics
