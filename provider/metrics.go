package provider

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cayleygraph/ldt/ontology"
)

var (
	mResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ldt_template_call_total",
		Help: "Number of template call resolutions by result.",
	}, []string{"result"})
	mResolveSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "ldt_template_call_seconds",
		Help: "Time to resolve the template call of a request.",
	})
)

func observe(call *ontology.TemplateCall, err error, dt time.Duration) {
	mResolveSeconds.Observe(dt.Seconds())
	switch {
	case err != nil:
		mResolved.WithLabelValues("error").Inc()
	case call == nil:
		mResolved.WithLabelValues("unmatched").Inc()
	default:
		mResolved.WithLabelValues("matched").Inc()
	}
}
