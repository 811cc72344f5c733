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
	"fmt"
	"strings"
	"time"

	"github.com/ltans/evidence/merkle"
)

// Describe renders a record and its archive timestamp sequence in a
// readable multi-line form for demo output and debugging.
func Describe(record *Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Evidence record (version %d, algorithm %s, %d chains)\n",
		record.FormatVersion, record.DigestAlgorithm, len(record.Sequence))

	for i, chain := range record.Sequence {
		fmt.Fprintf(&b, "chain %d: %s at %s\n", i+1,
			chain.Timestamp.Algorithm,
			chain.Timestamp.Time.UTC().Format(time.RFC3339Nano))
		fmt.Fprintf(&b, "  timestamped root [%v]\n", chain.Timestamp.Digest)
		fmt.Fprintf(&b, "  proven leaf      [%v]\n", chain.Path.LeafDigest())
		fmt.Fprintf(&b, "  reduced path:%s\n", indentLines(merkle.SprintPath(chain.Path), "    "))
	}

	return b.String()
}

func indentLines(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}
