package statistics

import (
	"math/big"
	"strconv"
	"time"

	"github.com/MinterTeam/taxtoken/helpers"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const MetricsSubsystem = "token"

// Metrics of the token. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Processed operations, by tx type and response code
	Transactions metrics.Counter
	// Collected fees in whole tokens, by route (tax_wallet or burn)
	FeesCollected metrics.Counter
	// Last committed state version
	Height metrics.Gauge
	// Total supply in whole tokens
	TotalSupply metrics.Gauge
	// Api response time in seconds, by path
	ApiResponseTime metrics.Gauge
}

// PrometheusMetrics registers the metrics in the default prometheus registry
func PrometheusMetrics(namespace string) *Metrics {
	return &Metrics{
		Transactions: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "transactions",
			Help:      "Number of processed operations",
		}, []string{"type", "code"}),
		FeesCollected: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "fees_collected",
			Help:      "Collected fees in tokens",
		}, []string{"route"}),
		Height: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "height",
			Help:      "Current height",
		}, []string{}),
		TotalSupply: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "total_supply",
			Help:      "Total supply in tokens",
		}, []string{}),
		ApiResponseTime: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "api",
			Help:      "Api response time by path",
		}, []string{"path"}),
	}
}

func NopMetrics() *Metrics {
	return &Metrics{
		Transactions:    discard.NewCounter(),
		FeesCollected:   discard.NewCounter(),
		Height:          discard.NewGauge(),
		TotalSupply:     discard.NewGauge(),
		ApiResponseTime: discard.NewGauge(),
	}
}

func (m *Metrics) ObserveTx(txType string, code uint32) {
	if m == nil {
		return
	}

	m.Transactions.With("type", txType, "code", strconv.Itoa(int(code))).Add(1)
}

func (m *Metrics) ObserveFee(route string, fee *big.Int) {
	if m == nil || fee == nil || fee.Sign() == 0 {
		return
	}

	m.FeesCollected.With("route", route).Add(helpers.UnitsToTokens(fee))
}

func (m *Metrics) SetHeight(height int64, totalSupply *big.Int) {
	if m == nil {
		return
	}

	m.Height.Set(float64(height))
	m.TotalSupply.Set(helpers.UnitsToTokens(totalSupply))
}

func (m *Metrics) SetApiTime(duration time.Duration, path string) {
	if m == nil {
		return
	}

	m.ApiResponseTime.With("path", path).Set(duration.Seconds())
}
