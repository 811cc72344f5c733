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

package merkle

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ers"
const subSystem = "merkle"

var (
	buildTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "build_total",
			Help:      "Number of hash trees built.",
		},
	)
	reduceTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "reduce_total",
			Help:      "Number of inclusion paths reduced.",
		},
	)

	registerMetrics sync.Once
)

// Register all metrics of the package.
func Register(r *prometheus.Registry) {
	registerMetrics.Do(
		func() {
			r.MustRegister(buildTotal, reduceTotal)
		},
	)
}
