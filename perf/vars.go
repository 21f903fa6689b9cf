package perf

import (
	"expvar"
	"net/http"

	"github.com/encodeous/metric"
)

var (
	EventLatency     = metric.NewHistogram("1m1s")
	QueueDepth       = metric.NewHistogram("10s1s")
	PacketsSent      = metric.NewCounter("10s1s")
	PacketsDelivered = metric.NewCounter("10s1s")
	PacketsDropped   = metric.NewCounter("10s1s")
	PacketsRejected  = metric.NewCounter("10s1s")
	LinkChanges      = metric.NewCounter("10s1s")
	Simulations      = metric.NewCounter("1m1s")
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	expvar.Publish("dvsim:EventLatency (µs)", EventLatency)
	expvar.Publish("dvsim:QueueDepth", QueueDepth)
	expvar.Publish("dvsim:PacketsSent/s", PacketsSent)
	expvar.Publish("dvsim:PacketsDelivered/s", PacketsDelivered)
	expvar.Publish("dvsim:PacketsDropped/s", PacketsDropped)
	expvar.Publish("dvsim:PacketsRejected/s", PacketsRejected)
	expvar.Publish("dvsim:LinkChanges/s", LinkChanges)
	expvar.Publish("dvsim:Simulations/m", Simulations)
}
