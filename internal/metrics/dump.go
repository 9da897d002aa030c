package metrics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Dump writes the current state of the default registry to w in the
// Prometheus text exposition format. Used at shutdown to leave a final
// snapshot of per-tool counters behind when -metrics-dump is set.
func Dump(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range filterOwn(families) {
		if err := enc.Encode(family); err != nil {
			return fmt.Errorf("encoding %s: %w", family.GetName(), err)
		}
	}
	return nil
}

// DumpToFile writes the snapshot to path, truncating any previous dump.
func DumpToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dump file: %w", err)
	}
	defer f.Close()

	return Dump(f)
}

// filterOwn keeps only this server's metric families, dropping the Go
// runtime and process collectors that share the default registry.
func filterOwn(families []*dto.MetricFamily) []*dto.MetricFamily {
	own := make([]*dto.MetricFamily, 0, len(families))
	for _, family := range families {
		if strings.HasPrefix(family.GetName(), "mcp_") {
			own = append(own, family)
		}
	}
	return own
}
