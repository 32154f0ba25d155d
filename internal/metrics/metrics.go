// Package metrics определяет счетчики Prometheus для ключевых операций
// платформы: попыток входа и решений о доступе к контенту.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LoginAttempts считает попытки входа с меткой результата: ok или failed.
var LoginAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "edushield_login_attempts_total",
		Help: "Number of login attempts by result.",
	},
	[]string{"result"},
)

// AccessDecisions считает решения проверки доступа по уровню ресурса
// и вердикту: allowed или denied.
var AccessDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "edushield_access_decisions_total",
		Help: "Number of access evaluator decisions by resource level and verdict.",
	},
	[]string{"level", "verdict"},
)

// DownloadTokensIssued считает выпущенные токены на скачивание.
var DownloadTokensIssued = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "edushield_download_tokens_issued_total",
		Help: "Number of issued download tokens.",
	},
)
