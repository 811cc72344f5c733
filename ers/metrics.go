/*
   Copyright 2024-2026 The ERS authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package ers

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ers"
const subSystem = "record"

var (
	recordsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "created_total",
			Help:      "Number of evidence records created.",
		},
	)
	renewalsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "renewals_total",
			Help:      "Number of renewal batches performed.",
		},
	)
	verificationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "verifications_total",
			Help:      "Number of record verifications.",
		},
	)
	verificationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "verification_failures_total",
			Help:      "Number of record verifications that failed.",
		},
	)

	registerMetrics sync.Once
)

// Register all metrics of the package.
func Register(r *prometheus.Registry) {
	registerMetrics.Do(
		func() {
			r.MustRegister(
				recordsCreatedTotal,
				renewalsTotal,
				verificationsTotal,
				verificationFailuresTotal,
			)
		},
	)
}
