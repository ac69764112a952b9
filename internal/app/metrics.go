package app

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newMetricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return mux
}

func newMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// metricsServer serves the Prometheus registry until stop is called.
type metricsServer struct {
	srv    *http.Server
	ln     net.Listener
	logger zerolog.Logger
}

func listenMetrics(addr string, reg *prometheus.Registry, logger zerolog.Logger) (*metricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to listen on %s", addr)
	}

	logger.Info().Str("addr", ln.Addr().String()).Msg("serving metrics")

	return &metricsServer{
		srv: &http.Server{
			Handler:           newMetricsHandler(reg),
			ReadHeaderTimeout: shutdownTimeout,
		},
		ln:     ln,
		logger: logger,
	}, nil
}

func (m *metricsServer) start(g *errgroup.Group) {
	g.Go(func() error {
		err := m.srv.Serve(m.ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "metrics server failed")
		}

		return nil
	})
}

func (m *metricsServer) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := m.srv.Shutdown(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("unable to stop metrics server")
	}
}
