// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type prometheusRow struct {
	name          string
	quantileLabel string
	value         string
}

/**
Format reference: https://prometheus.io/docs/instrumenting/exposition_formats/
For info on Prometheus labels, see: https://prometheus.io/docs/practices/naming/#labels
*/
func (r *inMemoryRegistry) ExportPrometheus() string {
	all := r.ExportAll()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	labels := r.labelsString()

	var builder strings.Builder
	for _, name := range names {
		m := all[name]
		rows := m.PrometheusRow()
		if len(rows) == 0 {
			continue
		}
		builder.WriteString(prometheusType(m.PrometheusName(), m.PrometheusType()))
		for _, row := range rows {
			builder.WriteString(row.format(labels))
		}
	}

	return builder.String()
}

func (r *inMemoryRegistry) labelsString() string {
	if r.chainId > 0 {
		return fmt.Sprintf("chain_id=\"%s\"", strconv.FormatUint(r.chainId, 10))
	}
	return ""
}

func (row *prometheusRow) format(labels string) string {
	var all []string
	if labels != "" {
		all = append(all, labels)
	}
	if row.quantileLabel != "" {
		all = append(all, fmt.Sprintf("aggregation=\"%s\"", row.quantileLabel))
	}

	if len(all) == 0 {
		return fmt.Sprintf("%s %s\n", row.name, row.value)
	}
	return fmt.Sprintf("%s{%s} %s\n", row.name, strings.Join(all, ","), row.value)
}

func prometheusName(name string) string {
	return strings.Replace(name, ".", "_", -1)
}

func prometheusType(name string, typeString string) string {
	return fmt.Sprintf("# TYPE %s %s\n", name, typeString)
}
